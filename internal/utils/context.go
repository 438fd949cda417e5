package utils

import "context"

// GetString pulls a string out of the request context, collapsing the
// missing-key and wrong-type cases into a single false.
func GetString(ctx context.Context, key any) (string, bool) {
	s, ok := ctx.Value(key).(string)
	return s, ok
}
