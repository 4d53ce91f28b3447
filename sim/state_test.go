package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/workforce-sim/org"
)

func TestNewRow_TimestampInsideShift(t *testing.T) {
	// GIVEN: A Morning-shift and a Night-shift person on 2024-01-10
	// WHEN: Building many rows for each
	// THEN: Timestamps stay within the 8-hour shift; Night rows may pass
	//       midnight while Date stays on the shift's start day

	s := engineState(t, 9)
	day := s.Clock.Today().Time

	tests := []struct {
		name  string
		start int
	}{
		{"Morning", 6},
		{"Night", 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPerson(60)
			p.Shift = &org.Shift{Name: tt.name, StartHour: tt.start}
			from := day.Add(time.Duration(tt.start) * time.Hour)
			to := from.Add(shiftMinutes * time.Minute)

			for i := 0; i < 500; i++ {
				r := s.newRow(p)
				assert.Equal(t, "2024-01-10", r.Date)
				assert.Equal(t, 9, r.DayIndex)
				assert.False(t, r.Timestamp.Before(from), r.Timestamp)
				assert.True(t, r.Timestamp.Before(to), r.Timestamp)
			}
		})
	}
}
