package validator_test

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"dipsport/shared/failure"
	"dipsport/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slot struct {
	FieldID string `json:"field_id" validate:"required"`
	Hour    int    `json:"hour"     validate:"min=0,max=23"`
}

type bookingRequest struct {
	Email   string `json:"email"   validate:"required,email"`
	Date    string `json:"date"    validate:"required,datetime=2006-01-02"`
	Details []slot `json:"details" validate:"required,min=1,dive"`
}

type windowRequest struct {
	OpenHour  int `json:"open_hour"  validate:"min=0,max=23"`
	CloseHour int `json:"close_hour" validate:"min=1,max=24,gtfield=OpenHour"`
}

type imageRequest struct {
	Image *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=2"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name: "valid",
			body: `{"email":"a@b.co","date":"2026-05-01","details":[{"field_id":"f1","hour":10}]}`,
		},
		{
			name:    "malformed json",
			body:    `{"email":`,
			message: "failed to decode request body",
		},
		{
			name:    "messages use json names",
			body:    `{"email":"nope","date":"2026-05-01","details":[{"field_id":"f1","hour":10}]}`,
			message: "email must be a valid email address",
		},
		{
			name:    "bad date",
			body:    `{"email":"a@b.co","date":"01/05/2026","details":[{"field_id":"f1","hour":10}]}`,
			message: "date must match the format 2006-01-02",
		},
		{
			name:    "nested fields keep their path",
			body:    `{"email":"a@b.co","date":"2026-05-01","details":[{"field_id":"f1","hour":24}]}`,
			message: "details[0].hour must be at most 23",
		},
		{
			name:    "empty details",
			body:    `{"email":"a@b.co","date":"2026-05-01","details":[]}`,
			message: "details must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := bookingRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.message == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestValidateStruct_CrossField(t *testing.T) {
	require.NoError(t, validator.ValidateStruct(&windowRequest{OpenHour: 8, CloseHour: 22}))

	err := validator.ValidateStruct(&windowRequest{OpenHour: 22, CloseHour: 8})
	require.Error(t, err)
	assert.Equal(t, "close_hour must be greater than OpenHour", err.Error())
}

func header(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "pitch.png",
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
		Size:     size,
	}
}

func TestValidateStruct_Upload(t *testing.T) {
	tests := []struct {
		name    string
		image   *multipart.FileHeader
		message string
	}{
		{name: "png", image: header("image/png", 1024)},
		{name: "wrong type", image: header("application/pdf", 1024), message: "image must be one of image/png image/jpeg"},
		{name: "too large", image: header("image/jpeg", 3*1024*1024), message: "image must not exceed 2 MB"},
		{name: "missing", image: nil, message: "image is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&imageRequest{Image: tt.image})

			if tt.message == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidateVar_DataURL(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("data:image/png;base64,iVBORw0KGgo=", "mimetypes=image/png"))
	assert.Error(t, validator.ValidateVar("data:text/plain;base64,aGk=", "mimetypes=image/png"))
	assert.Error(t, validator.ValidateVar("iVBORw0KGgo=", "mimetypes=image/png"))
}
