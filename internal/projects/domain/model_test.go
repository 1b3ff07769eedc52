package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	t.Run("accepts exact spellings", func(t *testing.T) {
		for _, s := range []string{"INITIATED", "IN_PROGRESS", "COMPLETED"} {
			got, ok := ParseStatus(s)
			assert.True(t, ok, s)
			assert.Equal(t, Status(s), got)
		}
	})

	t.Run("rejects wrong case and unknown values", func(t *testing.T) {
		for _, s := range []string{"Completed", "completed", "DONE", "", "in_progress"} {
			_, ok := ParseStatus(s)
			assert.False(t, ok, s)
		}
	})
}

func TestProjectHasMember(t *testing.T) {
	p := Project{MemberIDs: []int64{1, 2, 3}}
	assert.True(t, p.HasMember(2))
	assert.False(t, p.HasMember(4))
}
