package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainEvaluation = "dayshift/evaluation/v1"
	DomainOutcome    = "dayshift/outcome/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// EvaluationID computes the content-addressed ID of one journaled evaluation.
// The ID is stable across restarts given the same run token, operation,
// request, and sequence number.
func EvaluationID(runToken, operation string, request IRObject, seq int64) (string, error) {
	obj := IRObject{
		"run_token": IRString(runToken),
		"operation": IRString(operation),
		"request":   request,
		"seq":       IRInt(seq),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("EvaluationID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainEvaluation, canonical), nil
}

// OutcomeHash fingerprints what an evaluation produced: either the result
// object or the error code and message. Replay compares these hashes.
func OutcomeHash(outcome IRObject) (string, error) {
	canonical, err := MarshalCanonical(outcome)
	if err != nil {
		return "", fmt.Errorf("OutcomeHash: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainOutcome, canonical), nil
}

// MustEvaluationID is like EvaluationID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustEvaluationID(runToken, operation string, request IRObject, seq int64) string {
	id, err := EvaluationID(runToken, operation, request, seq)
	if err != nil {
		panic(err)
	}
	return id
}
