package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationIDDeterminism(t *testing.T) {
	request := IRObject{
		"date": IRString("2025-08-17T00:00:00Z"),
		"days": IRInt(5),
	}

	id1, err := EvaluationID("run-123", "add_days", request, 1)
	require.NoError(t, err)

	id2, err := EvaluationID("run-123", "add_days", request, 1)
	require.NoError(t, err)

	assert.Equal(t, id1, id2, "EvaluationID must be deterministic")
	assert.Len(t, id1, 64, "SHA-256 hex is 64 characters")
}

func TestEvaluationIDChangesWithInput(t *testing.T) {
	request := IRObject{"input": IRString("a,b")}

	id1 := MustEvaluationID("run-1", "split_list", request, 1)
	id2 := MustEvaluationID("run-2", "split_list", request, 1)
	id3 := MustEvaluationID("run-1", "split_list", request, 2)
	id4 := MustEvaluationID("run-1", "add_days", request, 1)
	id5 := MustEvaluationID("run-1", "split_list", IRObject{"input": IRString("a,c")}, 1)

	assert.NotEqual(t, id1, id2, "different run tokens should produce different IDs")
	assert.NotEqual(t, id1, id3, "different seq should produce different IDs")
	assert.NotEqual(t, id1, id4, "different operation should produce different IDs")
	assert.NotEqual(t, id1, id5, "different request should produce different IDs")
}

func TestEvaluationIDIgnoresKeyOrder(t *testing.T) {
	a := IRObject{"date": IRString("x"), "days": IRInt(1)}
	b := IRObject{"days": IRInt(1), "date": IRString("x")}

	assert.Equal(t, MustEvaluationID("r", "add_days", a, 1), MustEvaluationID("r", "add_days", b, 1))
}

func TestOutcomeHashDomainSeparation(t *testing.T) {
	outcome := IRObject{"items": IRArray{IRString("a")}}

	h, err := OutcomeHash(outcome)
	require.NoError(t, err)

	canonical, err := MarshalCanonical(outcome)
	require.NoError(t, err)

	assert.Equal(t, hashWithDomain(DomainOutcome, canonical), h)
	assert.NotEqual(t, hashWithDomain(DomainEvaluation, canonical), h)
}

func TestOutcomeHashRejectsInvalidNumber(t *testing.T) {
	_, err := OutcomeHash(IRObject{"bad": IRNumber("not-a-number")})
	require.Error(t, err)
}
