package rabbitmq_common

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultReconnectInterval = 10 * time.Second

// ConnectionManager держит одно соединение RabbitMQ на процесс
// и восстанавливает его в фоне.
type ConnectionManager struct {
	cfg        Config
	connection *amqp.Connection
	mutex      sync.RWMutex
	Logger     Logger

	reconnectInterval time.Duration
	stop              chan struct{}
	stopOnce          sync.Once
}

// NewManager подключается к брокеру и запускает фоновое переподключение.
func NewManager(cfg Config, logger Logger) (*ConnectionManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewNoopLogger()
	}

	m := &ConnectionManager{
		cfg:               cfg,
		Logger:            logger,
		reconnectInterval: defaultReconnectInterval,
		stop:              make(chan struct{}),
	}
	if _, err := m.getConnection(); err != nil {
		logger.Error(err, "Initial connection failed")
		return nil, fmt.Errorf("initial connection failed: %w", err)
	}

	go m.handleReconnect()
	return m, nil
}

// getConnection возвращает существующее соединение или устанавливает новое
func (m *ConnectionManager) getConnection() (*amqp.Connection, error) {
	m.mutex.RLock()
	if m.connection != nil && !m.connection.IsClosed() {
		m.mutex.RUnlock()
		return m.connection, nil
	}
	m.mutex.RUnlock()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// другой поток мог уже переподключиться
	if m.connection != nil && !m.connection.IsClosed() {
		return m.connection, nil
	}

	m.Logger.Debug("ConnectionManager: Connecting...")
	conn, err := amqp.Dial(m.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ConnectionManager: failed to dial RabbitMQ: %w", err)
	}
	m.connection = conn
	m.Logger.Debug("ConnectionManager: Connected successfully!")
	return m.connection, nil
}

// GetChannel открывает новый канал на общем соединении
func (m *ConnectionManager) GetChannel() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := m.getConnection()
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return conn, nil, fmt.Errorf("ConnectionManager: failed to open a channel: %w", err)
	}
	return conn, ch, nil
}

func (m *ConnectionManager) handleReconnect() {
	ticker := time.NewTicker(m.reconnectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
		}

		m.mutex.RLock()
		closed := m.connection != nil && m.connection.IsClosed()
		m.mutex.RUnlock()
		if !closed {
			continue
		}

		m.Logger.Warn("ConnectionManager: Detected closed connection. Attempting to reconnect...")
		if _, err := m.getConnection(); err != nil {
			m.Logger.Error(err, "ConnectionManager: Reconnect failed")
		}
	}
}

// Close останавливает переподключение и закрывает соединение
func (m *ConnectionManager) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.connection == nil || m.connection.IsClosed() {
		m.Logger.Debug("ConnectionManager: Connection was already closed or not established.")
		return nil
	}

	m.Logger.Debug("ConnectionManager: Closing the connection...")
	if err := m.connection.Close(); err != nil {
		m.Logger.Error(err, "ConnectionManager: Failed to close connection properly")
		return err
	}
	return nil
}
