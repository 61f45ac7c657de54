package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name      string
		days      int
		qualifies bool
		threshold int
		want      Status
	}{
		{"within threshold and qualified", 3, true, 3, StatusApproved},
		{"over threshold", 4, true, 3, StatusPending},
		{"unqualified", 2, false, 2, StatusPending},
		{"exactly at threshold", 2, true, 2, StatusApproved},
		{"single day unqualified", 1, false, 3, StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.days, tt.qualifies, tt.threshold))
		})
	}
}
