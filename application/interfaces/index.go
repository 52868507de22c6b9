package interfaces

import "net/http"

// ApplicationContext carries a parsed request body and the device metadata
// extracted by middleware into controllers, keeping them transport-agnostic.
type ApplicationContext[T interface{}] struct {
	Ctx        interface{}
	Body       *T
	Keys       map[string]any
	Header     http.Header
	DeviceID   string
	DeviceName string
	UserAgent  string
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	if ac.Header == nil {
		return nil
	}
	value := ac.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}

// GetContextData fetches a value stashed by middleware.
func (ac *ApplicationContext[T]) GetContextData(key string) any {
	if ac.Keys == nil {
		return nil
	}
	return ac.Keys[key]
}
