package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	d := NewDate(1999, time.March, 31)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1999-03-31"`, string(b))

	var got Date
	require.NoError(t, json.Unmarshal(b, &got))
	assert.True(t, got.Equal(d))

	var empty Date
	b, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	require.Error(t, json.Unmarshal([]byte(`"31.03.1999"`), &got))
}

func TestPersonAge_RecomputedAgainstClock(t *testing.T) {
	p := Person{BirthDate: NewDate(1980, time.June, 15)}
	assert.Equal(t, 43, p.Age(time.Date(2024, time.June, 14, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 44, p.Age(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)))

	death := NewDate(2000, time.January, 1)
	p.DeathDate = &death
	assert.Equal(t, 19, p.Age(time.Now()))
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	p := Slice(items, PageRequest{Page: 1, Size: 3})
	assert.Equal(t, []int{4, 5, 6}, p.Items)
	assert.Equal(t, 7, p.TotalElements)
	assert.Equal(t, 3, p.TotalPages())

	last := Slice(items, PageRequest{Page: 2, Size: 3})
	assert.Equal(t, []int{7}, last.Items)

	past := Slice(items, PageRequest{Page: 9, Size: 3})
	assert.Empty(t, past.Items)
	assert.NotNil(t, past.Items)
}

func TestMovieFilter(t *testing.T) {
	m := Movie{
		Title:       "The Matrix",
		ReleaseDate: NewDate(1999, time.March, 31),
		ImdbID:      "tt0133093",
		Genres:      []Genre{{Name: "Science Fiction"}},
		Countries:   []Country{{Name: "United States"}},
		Directors:   []Person{{Name: "Lana Wachowski"}},
	}
	year := 1999
	other := 2003
	assert.True(t, MovieFilter{Title: "matrix"}.Match(m))
	assert.True(t, MovieFilter{ReleaseYear: &year, Genre: "fiction"}.Match(m))
	assert.False(t, MovieFilter{ReleaseYear: &other}.Match(m))
	assert.True(t, MovieFilter{ImdbID: "TT0133093", ImdbExact: true}.Match(m))
	assert.False(t, MovieFilter{ImdbID: "tt01330", ImdbExact: true}.Match(m))
	assert.True(t, MovieFilter{Director: "wachowski", Country: "states"}.Match(m))
}

func TestIsImdbID(t *testing.T) {
	assert.True(t, IsImdbID("tt0133093"))
	assert.True(t, IsImdbID("tt123456789"))
	assert.False(t, IsImdbID("tt12345"))
	assert.False(t, IsImdbID("0133093"))
}

func TestCastInfoSameCredit(t *testing.T) {
	a := CastInfo{CharacterName: "Neo "}
	b := CastInfo{CharacterName: "neo"}
	assert.True(t, a.SameCredit(b))
	b.CharacterName = "Smith"
	assert.False(t, a.SameCredit(b))
}
