package interfaces

import "net/http"

// ApplicationContext carries a parsed request body and request metadata from
// the transport layer into controllers without tying them to gin.
type ApplicationContext[T interface{}] struct {
	Ctx      interface{}
	Body     *T
	Keys     map[string]any
	Header   http.Header
	DeviceID string
	Query    map[string]any
	Param    map[string]any
}

func (ac *ApplicationContext[T]) SetContextData(key string, value any) {
	if ac.Keys == nil {
		ac.Keys = map[string]any{}
	}
	ac.Keys[key] = value
}

func (ac *ApplicationContext[T]) GetContextData(key string) any {
	if ac.Keys == nil {
		return nil
	}
	return ac.Keys[key]
}

func (ac *ApplicationContext[T]) GetStringContextData(key string) string {
	data := ac.GetContextData(key)
	if data == nil {
		return ""
	}
	value, ok := data.(string)
	if !ok {
		return ""
	}
	return value
}

func (ac *ApplicationContext[T]) GetBoolContextData(key string) bool {
	data := ac.GetContextData(key)
	if data == nil {
		return false
	}
	value, ok := data.(bool)
	if !ok {
		return false
	}
	return value
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
