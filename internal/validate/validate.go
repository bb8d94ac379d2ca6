// Package validate holds the pure input checks applied before any store
// write. Each function either produces a normalized, fully-typed value or a
// field-level error list; nothing here has side effects.
package validate

import (
	"fmt"
	"strings"

	"github.com/hussein34535/waledapi/internal/models"
	"github.com/hussein34535/waledapi/internal/store"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(parts, "; ")
}

func required(errs FieldErrors, field, value string) FieldErrors {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, FieldError{Field: field, Message: "required"})
	}
	return errs
}

// AccountInput is the untyped creation payload as it arrives on the wire.
type AccountInput struct {
	Type       string `json:"type"`
	ServerName string `json:"server_name"`
	Status     string `json:"status"`
	IPAddress  string `json:"ip_address"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	ExpiryDate string `json:"expiry_date"`
	Config     string `json:"config"`
}

// Account validates a creation payload. SSH accounts must carry the full
// credential group; every other type must carry a config string.
func Account(in AccountInput) (*models.VpsAccount, FieldErrors) {
	var errs FieldErrors

	typ := strings.ToUpper(strings.TrimSpace(in.Type))
	if !models.ValidAccountType(typ) {
		errs = append(errs, FieldError{Field: "type", Message: "must be one of SSH, VLESS, TROJAN, SOCKS, SHADOWSOCKS, MS"})
	}
	errs = required(errs, "server_name", in.ServerName)

	status := in.Status
	if status == "" {
		status = models.StatusActive
	}
	if status != models.StatusActive && status != models.StatusInactive {
		errs = append(errs, FieldError{Field: "status", Message: "must be active or inactive"})
	}

	if typ == models.TypeSSH {
		errs = required(errs, "ip_address", in.IPAddress)
		errs = required(errs, "username", in.Username)
		errs = required(errs, "password", in.Password)
		errs = required(errs, "expiry_date", in.ExpiryDate)
	} else if models.ValidAccountType(typ) {
		errs = required(errs, "config", in.Config)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &models.VpsAccount{
		Type:       typ,
		ServerName: in.ServerName,
		Status:     status,
		IPAddress:  in.IPAddress,
		Username:   in.Username,
		Password:   in.Password,
		ExpiryDate: in.ExpiryDate,
		Config:     in.Config,
	}, nil
}

// AccountPatchInput is the partial update payload; absent fields stay nil.
type AccountPatchInput struct {
	Type       *string `json:"type"`
	ServerName *string `json:"server_name"`
	Status     *string `json:"status"`
	IPAddress  *string `json:"ip_address"`
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	ExpiryDate *string `json:"expiry_date"`
	Config     *string `json:"config"`
}

// AccountPatch validates whichever fields the caller supplied. The store
// enforces the type/field-group invariant after the merge.
func AccountPatch(in AccountPatchInput) (store.AccountPatch, FieldErrors) {
	var errs FieldErrors
	patch := store.AccountPatch{
		ServerName: in.ServerName,
		IPAddress:  in.IPAddress,
		Username:   in.Username,
		Password:   in.Password,
		ExpiryDate: in.ExpiryDate,
		Config:     in.Config,
	}

	if in.Type != nil {
		typ := strings.ToUpper(strings.TrimSpace(*in.Type))
		if !models.ValidAccountType(typ) {
			errs = append(errs, FieldError{Field: "type", Message: "must be one of SSH, VLESS, TROJAN, SOCKS, SHADOWSOCKS, MS"})
		}
		patch.Type = &typ
	}
	if in.ServerName != nil && strings.TrimSpace(*in.ServerName) == "" {
		errs = append(errs, FieldError{Field: "server_name", Message: "must not be empty"})
	}
	if in.Status != nil {
		if *in.Status != models.StatusActive && *in.Status != models.StatusInactive {
			errs = append(errs, FieldError{Field: "status", Message: "must be active or inactive"})
		}
		patch.Status = in.Status
	}

	if len(errs) > 0 {
		return store.AccountPatch{}, errs
	}
	return patch, nil
}

// SNICreate checks a {name, host} creation payload.
func SNICreate(name, host string) (*models.SNIRecord, FieldErrors) {
	var errs FieldErrors
	errs = required(errs, "name", name)
	errs = required(errs, "host", host)
	if len(errs) > 0 {
		return nil, errs
	}
	return &models.SNIRecord{Name: name, Host: host}, nil
}

// SNIUpdate checks a {id, host} update payload. There is no name field; the
// identifier is immutable post-creation.
func SNIUpdate(id, host string) FieldErrors {
	var errs FieldErrors
	errs = required(errs, "id", id)
	errs = required(errs, "host", host)
	return errs
}
