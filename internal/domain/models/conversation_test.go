package models

import "testing"

func TestIsConversationParticipant(t *testing.T) {
	cases := []struct {
		name      string
		userID    int64
		driverID  int64
		explicit  bool
		confirmed bool
		want      bool
	}{
		{"driver always belongs", 7, 7, false, false, true},
		{"explicit member", 3, 7, true, false, true},
		{"confirmed booking holder", 3, 7, false, true, true},
		{"explicit and confirmed", 3, 7, true, true, true},
		{"stranger", 3, 7, false, false, false},
	}
	for _, c := range cases {
		if got := IsConversationParticipant(c.userID, c.driverID, c.explicit, c.confirmed); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}
