package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hhmm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", "2024-06-04 "+hhmm, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRecord_Apply_FullDay(t *testing.T) {
	rec := Record{Email: "dev@workholic.in", Date: at("00:00")}

	require.NoError(t, rec.Apply(ActionClockIn, at("09:00")))
	require.NoError(t, rec.Apply(ActionBreakStart, at("09:30")))
	assert.Equal(t, 0, rec.OpenBreak())
	require.NoError(t, rec.Apply(ActionBreakEnd, at("09:45")))
	assert.Equal(t, -1, rec.OpenBreak())
	require.NoError(t, rec.Apply(ActionClockOut, at("17:00")))

	assert.True(t, rec.IsClosed())
	assert.Equal(t, 15*time.Minute, rec.BreakTotal())
	assert.Equal(t, 465, rec.WorkedMinutes())
}

func TestRecord_Apply_ClockOutClosesOpenBreak(t *testing.T) {
	rec := Record{}
	require.NoError(t, rec.Apply(ActionClockIn, at("09:00")))
	require.NoError(t, rec.Apply(ActionBreakStart, at("12:00")))
	require.NoError(t, rec.Apply(ActionClockOut, at("12:20")))

	require.Len(t, rec.Breaks, 1)
	require.NotNil(t, rec.Breaks[0].End)
	assert.Equal(t, at("12:20"), *rec.Breaks[0].End)
	assert.Equal(t, 20*time.Minute, rec.BreakTotal())
}

func TestRecord_Apply_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		prepare []Action
		action  Action
		wantErr error
	}{
		{"break before clock in", nil, ActionBreakStart, ErrNotClockedIn},
		{"clock out before clock in", nil, ActionClockOut, ErrNotClockedIn},
		{"break end without break", []Action{ActionClockIn}, ActionBreakEnd, ErrNotOnBreak},
		{"double clock in", []Action{ActionClockIn}, ActionClockIn, ErrAlreadyClockedIn},
		{"second open break", []Action{ActionClockIn, ActionBreakStart}, ActionBreakStart, ErrAlreadyOnBreak},
		{"action after clock out", []Action{ActionClockIn, ActionClockOut}, ActionClockIn, ErrAlreadyClockedOut},
		{"unknown action", nil, Action("nap"), ErrInvalidAction},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := Record{}
			now := at("09:00")
			for _, a := range c.prepare {
				require.NoError(t, rec.Apply(a, now))
				now = now.Add(time.Minute)
			}
			before := rec

			err := rec.Apply(c.action, now)

			assert.ErrorIs(t, err, c.wantErr)
			assert.Equal(t, before, rec)
		})
	}
}

func TestRecord_BreakTotal_IgnoresOpenBreaks(t *testing.T) {
	end1 := at("10:10")
	end2 := at("13:30")
	rec := Record{Breaks: []Break{
		{Start: at("10:00"), End: &end1},
		{Start: at("13:00"), End: &end2},
		{Start: at("15:00")},
	}}

	assert.Equal(t, 40*time.Minute, rec.BreakTotal())
	assert.Equal(t, 2, rec.OpenBreak())
}

func TestStatus_PointsAndLabels(t *testing.T) {
	assert.Equal(t, 2, StatusFullDay.Points())
	assert.Equal(t, 1, StatusHalfDay.Points())
	assert.Equal(t, -1, StatusAbsent.Points())
	assert.Equal(t, 0, StatusHoliday.Points())
	assert.Equal(t, "Full Day", StatusFullDay.Label())
	assert.Equal(t, "XX", Status("XX").Label())
}

func TestRecordResponse_RoundTripKeepsOpenBreak(t *testing.T) {
	rec := Record{Email: "dev@workholic.in", Date: at("00:00")}
	require.NoError(t, rec.Apply(ActionClockIn, at("09:00")))
	require.NoError(t, rec.Apply(ActionBreakStart, at("09:30")))

	resp := NewRecordResponse(rec)
	assert.Nil(t, resp.Status)
	assert.Nil(t, resp.ClockOut)
	require.Len(t, resp.Breaks, 1)
	assert.Nil(t, resp.Breaks[0].End)

	back, err := resp.ToRecord()
	require.NoError(t, err)
	assert.True(t, back.ClockIn.Equal(*rec.ClockIn))
	assert.Equal(t, 0, back.OpenBreak())
	assert.Equal(t, "2024-06-04", back.Date.Format(DateLayout))
}

func TestRecordResponse_ToRecord_Malformed(t *testing.T) {
	bad := "yesterday"
	_, err := RecordResponse{Date: "2024-06-04", ClockIn: &bad}.ToRecord()
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = RecordResponse{Date: "06/04/2024"}.ToRecord()
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestClockActionRequest_Validate(t *testing.T) {
	ok := ClockActionRequest{Action: "break-start"}
	assert.NoError(t, ok.Validate())

	empty := ClockActionRequest{}
	assert.Error(t, empty.Validate())

	unknown := ClockActionRequest{Action: "lunch"}
	assert.Error(t, unknown.Validate())
}

func TestRecord_ComputeStatus(t *testing.T) {
	expectedStart := at("10:30")
	expectedWork := 450 * time.Minute

	closed := func(in, out string) Record {
		rec := Record{}
		require.NoError(t, rec.Apply(ActionClockIn, at(in)))
		require.NoError(t, rec.Apply(ActionClockOut, at(out)))
		return rec
	}

	cases := []struct {
		name string
		rec  Record
		want Status
	}{
		{"on time full day", closed("10:30", "19:00"), StatusFullDay},
		{"late within grace", closed("10:45", "19:00"), StatusFullDay},
		{"late beyond grace", closed("10:46", "20:00"), StatusHalfDay},
		{"left early", closed("10:30", "15:00"), StatusHalfDay},
		{"exactly 80 percent", closed("10:30", "16:30"), StatusFullDay},
		{"never clocked in", Record{}, StatusAbsent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.rec.ComputeStatus(expectedStart, expectedWork))
		})
	}
}

func TestDateOf(t *testing.T) {
	d := DateOf(at("17:45"))
	assert.Equal(t, at("00:00"), d)
}
