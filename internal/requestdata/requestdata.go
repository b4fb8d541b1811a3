package requestdata

import (
	"context"
)

var requestDataKey = struct{}{}

// RequestData is the authenticated principal attached to a request context:
// the role ("student" or "teacher") plus its natural identifier (USN or
// faculty id).
type RequestData struct {
	TokenString string
	Role        string
	SubjectID   string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
