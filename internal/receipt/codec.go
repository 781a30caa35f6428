// Package receipt produces self-contained share tokens for single
// transactions and inverts them without any server-side lookup. A token is
// the base64 form of the transaction's UTF-8 JSON, safe to place in a URL
// fragment, so any Unicode content in titles and narratives round-trips
// exactly.
package receipt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aurafin/aura-backend/internal/domain"
)

// FragmentPrefix is the URL fragment path under which receipt tokens are
// embedded in shareable links.
const FragmentPrefix = "#/receipt/"

// DecodeError reports a malformed, truncated or tampered share token.
// Consumers render an invalid-link state instead of crashing.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode receipt token: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode receipt token: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode serializes the transaction into a URL-embeddable token.
func Encode(tx domain.Transaction) (string, error) {
	data, err := json.Marshal(tx)
	if err != nil {
		return "", fmt.Errorf("failed to serialize transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode inverts Encode. It never panics on bad input: malformed base64,
// broken JSON or a payload that violates the transaction schema all yield a
// *DecodeError. Tokens in the URL-safe base64 alphabet are accepted too.
func Decode(token string) (domain.Transaction, error) {
	var tx domain.Transaction

	if token == "" {
		return tx, &DecodeError{Reason: "empty token"}
	}

	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		data, err = base64.URLEncoding.DecodeString(token)
	}
	if err != nil {
		return tx, &DecodeError{Reason: "invalid base64 payload", Err: err}
	}

	if err := json.Unmarshal(data, &tx); err != nil {
		return domain.Transaction{}, &DecodeError{Reason: "invalid transaction payload", Err: err}
	}

	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, &DecodeError{Reason: "transaction fails validation", Err: err}
	}

	return tx, nil
}

// ShareURL builds the full shareable link for a transaction receipt.
func ShareURL(base string, tx domain.Transaction) (string, error) {
	token, err := Encode(tx)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(base, "/") + "/" + FragmentPrefix + token, nil
}

// Reference derives the printable receipt reference from a transaction id.
func Reference(tx domain.Transaction) string {
	id := tx.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "FT-" + strings.ToUpper(id)
}
