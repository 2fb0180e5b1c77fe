package marc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *Record {
	r := NewRecord()
	r.Leader = "00000cam a2200000 i 4500"
	r.AddControlField("001", " 12345 ")
	r.AddField(
		NewField("100", "1", "", Subfield{"a", "Hargittai, I."}),
		NewField("245", "1", "0", Subfield{"a", "Symmetry :"}, Subfield{"b", "through the eyes of a chemist."}),
		NewField("700", "1", "", Subfield{"a", "Hargittai, M.,"}),
		NewField("264", " ", "4", Subfield{"c", "©2008"}),
		NewField("264", " ", "1", Subfield{"a", "Dordrecht :"}, Subfield{"b", "Springer,"}, Subfield{"c", "c2009."}),
		NewField("700", "1", "", Subfield{"a", "Editor, Second"}),
	)
	return r
}

func TestFields_RecordOrder(t *testing.T) {
	r := sampleRecord()

	fields := r.Fields("700", "100")
	require.Len(t, fields, 3)
	assert.Equal(t, "100", fields[0].Tag)
	assert.Equal(t, "Hargittai, M.,", fields[1].Get("a"))
	assert.Equal(t, "Editor, Second", fields[2].Get("a"))

	assert.Empty(t, r.Fields("999"))
}

func TestField_FirstOrNil(t *testing.T) {
	r := sampleRecord()

	require.NotNil(t, r.Field("264"))
	assert.Equal(t, "4", r.Field("264").Indicator2)
	assert.Nil(t, r.Field("250"))
}

func TestSubfield(t *testing.T) {
	f := NewField("245", "1", "0", Subfield{"a", "One"}, Subfield{"b", "Two"}, Subfield{"a", "Three"})

	v, ok := f.Subfield("a")
	assert.True(t, ok)
	assert.Equal(t, "One", v)

	_, ok = f.Subfield("c")
	assert.False(t, ok)
	assert.Equal(t, "", f.Get("c"))

	assert.Equal(t, []string{"One", "Two", "Three"}, f.SubfieldValues("a", "b"))
}

func TestPublisherAndPubYear(t *testing.T) {
	t.Run("264 with publication indicator", func(t *testing.T) {
		r := sampleRecord()
		assert.Equal(t, "Springer,", r.Publisher())
		assert.Equal(t, "c2009.", r.PubYear())
	})

	t.Run("260 wins over 264", func(t *testing.T) {
		r := sampleRecord()
		r.AddField(NewField("260", "", "", Subfield{"b", "Old Press"}, Subfield{"c", "1999"}))
		assert.Equal(t, "Old Press", r.Publisher())
		assert.Equal(t, "1999", r.PubYear())
	})

	t.Run("absent", func(t *testing.T) {
		r := NewRecord()
		r.AddField(NewField("264", " ", "4", Subfield{"c", "©2008"}))
		assert.Equal(t, "", r.Publisher())
		assert.Equal(t, "", r.PubYear())
	})
}

func TestIndicators(t *testing.T) {
	f := NewField("400", "", "#")
	assert.Equal(t, " ", f.Indicator1)
	assert.Equal(t, " ", f.Indicator2)

	f = NewField("400", "1", "1")
	assert.True(t, f.MatchesIndicators("*", "1"))
	assert.True(t, f.MatchesIndicators("", ""))
	assert.False(t, f.MatchesIndicators("0", "*"))
}

func TestControlFields(t *testing.T) {
	r := sampleRecord()

	assert.Equal(t, "12345", r.ControlNum())
	_, ok := r.ControlField("008")
	assert.False(t, ok)
	assert.True(t, IsControlTag("008"))
	assert.False(t, IsControlTag("010"))
}
