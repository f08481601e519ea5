package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/beyondeth/shop/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const schemasRoot = "requests"

const (
	QuickBuyRequest     = "QuickBuyRequest/1.0.0"
	UpdateMemberRequest = "UpdateMemberRequest/1.0.0"
	CreateReviewRequest = "CreateReviewRequest/1.0.0"
)

// ErrSchemaViolation - тело запроса не прошло проверку по схеме.
var ErrSchemaViolation = errors.New("request body does not match schema")

// Registry - скомпилированные схемы тел запросов по ключу "Name/version".
type Registry struct {
	schemas map[string]*jsonschema.Schema
}

// NewRegistry компилирует все схемы из встроенной файловой системы.
func NewRegistry() (*Registry, error) {
	return newRegistryFromFS(schemas.SchemasFS)
}

func newRegistryFromFS(fsys fs.FS) (*Registry, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string

	// сначала все схемы добавляются как ресурсы, чтобы работали $ref между ними
	err := fs.WalkDir(fsys, schemasRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := fsys.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open schema %s: %w", path, err)
		}
		defer file.Close()

		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking schema resources: %w", err)
	}

	registry := &Registry{schemas: make(map[string]*jsonschema.Schema, len(paths))}
	for _, path := range paths {
		key := keyFromPath(path)
		if key == "" {
			return nil, fmt.Errorf("unexpected schema path %s", path)
		}
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		registry.schemas[key] = schema
	}

	return registry, nil
}

// keyFromPath: "requests/quick-buy/v1.json" -> "QuickBuyRequest/1.0.0"
func keyFromPath(path string) string {
	trimmed := strings.TrimPrefix(path, schemasRoot+"/")
	trimmed = strings.TrimSuffix(trimmed, ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString("Request")

	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(parts[1], "v"))
}

// Keys возвращает ключи зарегистрированных схем.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.schemas))
	for k := range r.schemas {
		keys = append(keys, k)
	}
	return keys
}

// Validate проверяет сырое тело запроса по схеме key.
// Ошибки невалидного JSON и несоответствия схеме оборачивают ErrSchemaViolation.
func (r *Registry) Validate(key string, body []byte) error {
	schema, ok := r.schemas[key]
	if !ok {
		return fmt.Errorf("schema %q not found", key)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%w: body is not valid JSON: %v", ErrSchemaViolation, err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	return nil
}
