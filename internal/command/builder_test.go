package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderPreservesOrder(t *testing.T) {
	b := NewBuilder()
	b.Append(SetAlign{Align: AlignCenter})
	b.Append(Println{Text: "first"})
	b.Append(LeftRight{Left: "item", Right: "1.00"})
	b.Append(Cut{})

	seq := b.Finish()
	assert.Equal(t, Sequence{
		SetAlign{Align: AlignCenter},
		Println{Text: "first"},
		LeftRight{Left: "item", Right: "1.00"},
		Cut{},
	}, seq)
}

func TestBuilderFinishFreezes(t *testing.T) {
	b := NewBuilder()
	b.Append(Println{Text: "only"})
	assert.Equal(t, 1, b.Len())

	seq := b.Finish()
	assert.Len(t, seq, 1)

	assert.Panics(t, func() { b.Append(Cut{}) })
	assert.Panics(t, func() { b.Finish() })
}

func TestBuilderEmptySequence(t *testing.T) {
	b := NewBuilder()
	seq := b.Finish()
	assert.Empty(t, seq)
	assert.NotNil(t, seq)
}
