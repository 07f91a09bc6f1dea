package initdata

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Required sub-fields are pointers so that "absent" and "zero" differ;
// the validator reports absent ones by their json name.
type userWire struct {
	ID                    *int64  `json:"id" validate:"required"`
	FirstName             *string `json:"first_name" validate:"required"`
	LastName              string  `json:"last_name"`
	Username              string  `json:"username"`
	LanguageCode          string  `json:"language_code"`
	IsPremium             bool    `json:"is_premium"`
	IsBot                 bool    `json:"is_bot"`
	AddedToAttachmentMenu bool    `json:"added_to_attachment_menu"`
	AllowsWriteToPm       bool    `json:"allows_write_to_pm"`
	PhotoURL              string  `json:"photo_url"`
}

type chatWire struct {
	ID       *int64  `json:"id" validate:"required"`
	Type     *string `json:"type" validate:"required"`
	Title    *string `json:"title" validate:"required"`
	Username string  `json:"username"`
	PhotoURL string  `json:"photo_url"`
}

var schema = newSchema()

func newSchema() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode turns verified fields into InitData. It is all-or-nothing: any
// malformed known field fails the whole payload. Unknown fields are ignored.
func Decode(fields FieldSet) (*InitData, error) {
	hash, ok := fields.Get(hashField)
	if !ok {
		return nil, ErrMissingHash
	}

	rawAuthDate, ok := fields.Get(authDateField)
	if !ok {
		return nil, ErrMissingAuthDate
	}
	authDate, err := strconv.ParseInt(rawAuthDate, 10, 64)
	if err != nil {
		return nil, fieldErr(ErrInvalidInteger, authDateField, err)
	}

	data := &InitData{
		AuthDate: time.Unix(authDate, 0).UTC(),
		Hash:     hash,
	}
	data.Signature, _ = fields.Get(signatureField)
	data.QueryID, _ = fields.Get("query_id")
	data.StartParam, _ = fields.Get("start_param")
	data.ChatInstance, _ = fields.Get("chat_instance")

	if raw, ok := fields.Get("chat_type"); ok {
		t := ChatType(raw)
		if !t.Known() {
			return nil, fieldErr(ErrUnknownChatType, "chat_type", nil)
		}
		data.ChatType = t
	}

	if raw, ok := fields.Get("can_send_after"); ok {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fieldErr(ErrInvalidInteger, "can_send_after", err)
		}
		data.CanSendAfter = &n
	}

	if data.User, err = decodeUser(fields, "user"); err != nil {
		return nil, err
	}
	if data.Receiver, err = decodeUser(fields, "receiver"); err != nil {
		return nil, err
	}
	if data.Chat, err = decodeChat(fields); err != nil {
		return nil, err
	}

	return data, nil
}

func decodeUser(fields FieldSet, name string) (*User, error) {
	raw, ok := fields.Get(name)
	if !ok {
		return nil, nil
	}

	var w userWire
	if err := decodeJSON(name, raw, &w); err != nil {
		return nil, err
	}

	return &User{
		ID:                    *w.ID,
		FirstName:             *w.FirstName,
		LastName:              w.LastName,
		Username:              w.Username,
		LanguageCode:          w.LanguageCode,
		IsPremium:             w.IsPremium,
		IsBot:                 w.IsBot,
		AddedToAttachmentMenu: w.AddedToAttachmentMenu,
		AllowsWriteToPm:       w.AllowsWriteToPm,
		PhotoURL:              w.PhotoURL,
	}, nil
}

func decodeChat(fields FieldSet) (*Chat, error) {
	raw, ok := fields.Get("chat")
	if !ok {
		return nil, nil
	}

	var w chatWire
	if err := decodeJSON("chat", raw, &w); err != nil {
		return nil, err
	}

	t := ChatType(*w.Type)
	if !t.Known() || t == ChatTypeSender {
		return nil, &FieldError{Kind: ErrUnknownChatType, Field: "chat", Subfield: "type"}
	}

	return &Chat{
		ID:       *w.ID,
		Type:     t,
		Title:    *w.Title,
		Username: w.Username,
		PhotoURL: w.PhotoURL,
	}, nil
}

// decodeJSON unmarshals raw into dst and checks its required sub-fields.
func decodeJSON(field, raw string, dst any) error {
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fieldErr(ErrInvalidJSON, field, err)
	}

	err := schema.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Kind: ErrMissingSubfield, Field: field, Subfield: verrs[0].Field()}
	}
	return fieldErr(ErrInvalidJSON, field, err)
}
