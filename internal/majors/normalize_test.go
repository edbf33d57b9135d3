package majors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unirise-backend/internal/catalog"
)

func TestNormalizeTranslatesAndJoins(t *testing.T) {
	got := Normalize(catalog.Default(), completeAnswers())

	assert.Equal(t, "Technology, Physics", got["interest"])
	assert.Equal(t, "Problem-solving", got["strength"])
	assert.Equal(t, "With hands-on projects", got["study"])
	assert.Equal(t, "Technical skills, Analytical skills", got["skills"])
	assert.Len(t, got, 8)
}

func TestNormalizeKeepsUnknownLabels(t *testing.T) {
	answers := completeAnswers()
	answers["interest"] = Selection{"الفلك", "Technology", "الطب"}
	answers["extra"] = Selection{"ignored"}

	got := Normalize(catalog.Default(), answers)
	assert.Equal(t, "الفلك, Technology, Medicine", got["interest"])
	_, ok := got["extra"]
	assert.False(t, ok)
}

func TestNormalizeKeepsUnknownLabelsUntrimmed(t *testing.T) {
	answers := completeAnswers()
	answers["interest"] = Selection{" Astronomy ", "  التكنولوجيا "}

	got := Normalize(catalog.Default(), answers)
	assert.Equal(t, " Astronomy , Technology", got["interest"])
}

func TestValidateReportsMissingKeysInOrder(t *testing.T) {
	answers := completeAnswers()
	delete(answers, "values")
	delete(answers, "interest")

	err := Validate(catalog.Default(), answers)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"interest", "values"}, verr.Missing)
	assert.Equal(t, "Missing keys: interest, values", verr.Error())
}

func TestValidateReportsEmptySelections(t *testing.T) {
	answers := completeAnswers()
	answers["skills"] = Selection{}
	answers["vision"] = Selection{"  "}

	err := Validate(catalog.Default(), answers)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, verr.Missing)
	assert.Equal(t, []string{"vision", "skills"}, verr.Empty)
	assert.Equal(t, "Empty selections: vision, skills", verr.Error())
}

func TestValidateReportsMissingAndEmptyTogether(t *testing.T) {
	answers := completeAnswers()
	delete(answers, "study")
	answers["interest"] = Selection{}

	err := Validate(catalog.Default(), answers)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"study"}, verr.Missing)
	assert.Equal(t, []string{"interest"}, verr.Empty)
	assert.Equal(t, "Missing keys: study; Empty selections: interest", verr.Error())
}

func TestValidateAcceptsCompleteAnswers(t *testing.T) {
	assert.NoError(t, Validate(catalog.Default(), completeAnswers()))
}
