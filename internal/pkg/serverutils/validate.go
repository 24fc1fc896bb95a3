package serverutils

import (
	"reflect"

	"contract-workflow-be/pkg/schema"
)

// ValidateRequest checks a request body against its validate tags.
func ValidateRequest(req interface{}) error {
	name := "request"
	if t := reflect.TypeOf(req); t != nil {
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t.Name() != "" {
			name = t.Name()
		}
	}
	return schema.Validate(name, req)
}
