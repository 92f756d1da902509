package domain_test

import (
	"encoding/json"
	"testing"

	"go-outreach-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDataCoercion(t *testing.T) {
	t.Run("Should fold scalars arrays and maps", func(t *testing.T) {
		raw := `{"name":"Jane","experience_years":7,"skills":["Go","SQL"],"links":{"GitHub":"https://github.com/jane"}}`
		var data domain.ProfileData
		require.NoError(t, json.Unmarshal([]byte(raw), &data))

		assert.Equal(t, domain.FieldString, data["name"].Kind)
		assert.Equal(t, "Jane", data["name"].Str)
		assert.Equal(t, "7", data["experience_years"].Str)
		assert.Equal(t, []string{"Go", "SQL"}, data["skills"].List)
		assert.Equal(t, "https://github.com/jane", data["links"].Map["GitHub"])
	})

	t.Run("Should round trip through JSON", func(t *testing.T) {
		data := domain.ProfileData{
			"skills": domain.ListValue("Go"),
			"links":  domain.MapValue(map[string]string{"X": "y"}),
		}
		b, err := json.Marshal(data)
		require.NoError(t, err)

		var back domain.ProfileData
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, data, back)
	})
}

func TestProfileDataFieldOps(t *testing.T) {
	t.Run("Should normalize new field names", func(t *testing.T) {
		data := domain.ProfileData{}
		assert.True(t, data.AddField("  Preferred  Location "))
		_, ok := data["preferred_location"]
		assert.True(t, ok)
		assert.Equal(t, domain.StringValue(""), data["preferred_location"])
	})

	t.Run("Should not overwrite existing field", func(t *testing.T) {
		data := domain.ProfileData{"name": domain.StringValue("Jane")}
		assert.False(t, data.AddField("Name"))
		assert.Equal(t, "Jane", data["name"].Str)
	})

	t.Run("Should replace non-list value on array add", func(t *testing.T) {
		data := domain.ProfileData{"skills": domain.StringValue("Go")}
		assert.True(t, data.AddArrayItem("skills", "SQL"))
		assert.Equal(t, []string{"SQL"}, data["skills"].List)
	})

	t.Run("Should append to existing list", func(t *testing.T) {
		data := domain.ProfileData{"skills": domain.ListValue("Go")}
		assert.True(t, data.AddArrayItem("skills", "SQL"))
		assert.Equal(t, []string{"Go", "SQL"}, data["skills"].List)
	})

	t.Run("Should remove list item by index only", func(t *testing.T) {
		data := domain.ProfileData{
			"skills": domain.ListValue("Go", "SQL"),
			"name":   domain.StringValue("Jane"),
		}
		assert.True(t, data.RemoveArrayItem("skills", 0))
		assert.Equal(t, []string{"SQL"}, data["skills"].List)
		assert.False(t, data.RemoveArrayItem("skills", 5))
		assert.False(t, data.RemoveArrayItem("name", 0))
	})

	t.Run("Should deep copy on Clone", func(t *testing.T) {
		data := domain.ProfileData{"skills": domain.ListValue("Go")}
		clone := data.Clone()
		clone.AddArrayItem("skills", "SQL")
		assert.Equal(t, []string{"Go"}, data["skills"].List)
	})
}

func TestProfileDraft(t *testing.T) {
	t.Run("Should retain last valid mapping on bad input", func(t *testing.T) {
		d := domain.NewProfileDraft(domain.ProfileData{"name": domain.StringValue("Jane")})

		d.SetRawText(`{"name": "Jan`)
		assert.Equal(t, `{"name": "Jan`, d.RawText())
		assert.Equal(t, "Jane", d.Data()["name"].Str)

		d.SetRawText(`{"name": "Janet"}`)
		assert.Equal(t, "Janet", d.Data()["name"].Str)
	})

	t.Run("Should refresh raw text after field ops", func(t *testing.T) {
		d := domain.NewProfileDraft(domain.ProfileData{})
		d.SetRawText(`not json`)
		assert.True(t, d.AddField("skills"))
		assert.Contains(t, d.RawText(), "skills")

		var parsed domain.ProfileData
		assert.NoError(t, json.Unmarshal([]byte(d.RawText()), &parsed))
	})

	t.Run("Should leave raw text untouched on no-op edits", func(t *testing.T) {
		d := domain.NewProfileDraft(domain.ProfileData{"name": domain.StringValue("Jane")})
		d.SetRawText(`broken {`)
		assert.False(t, d.AddField("name"))
		assert.Equal(t, `broken {`, d.RawText())
	})
}
