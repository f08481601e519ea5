package contextkeys

import "context"

type sessionIDKeyType struct{}
type memberTokenKeyType struct{}

var (
	sessionIDKey   = sessionIDKeyType{}
	memberTokenKey = memberTokenKeyType{}
)

// ContextWithSessionID помещает идентификатор браузерной сессии в контекст
func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func SessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithMemberToken сохраняет токен участника платформы.
// Токен не разбирается витриной, а как есть пробрасывается в платформу.
func ContextWithMemberToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, memberTokenKey, token)
}

func MemberTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(memberTokenKey).(string); ok {
		return token
	}
	return ""
}
