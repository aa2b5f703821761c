package customvalidator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusPayload struct {
	Status string `validate:"task_status"`
}

type phonePayload struct {
	Phone string `validate:"phone_number"`
}

func newTestValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestTaskStatusValidation(t *testing.T) {
	v := newTestValidator(t)

	for _, status := range []string{"to_do", "doing", "done"} {
		assert.NoError(t, v.Struct(statusPayload{Status: status}), status)
	}
	for _, status := range []string{"", "todo", "completed", "DONE"} {
		assert.Error(t, v.Struct(statusPayload{Status: status}), status)
	}
}

func TestPhoneNumberValidation(t *testing.T) {
	v := newTestValidator(t)

	assert.NoError(t, v.Struct(phonePayload{Phone: "+992111111111"}))
	assert.NoError(t, v.Struct(phonePayload{Phone: "992111111111"}))
	assert.Error(t, v.Struct(phonePayload{Phone: "не телефон"}))
	assert.Error(t, v.Struct(phonePayload{Phone: "+12"}))
}
