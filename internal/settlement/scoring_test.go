package settlement

import "testing"

func TestScore(t *testing.T) {
	official := [3]string{"Verstappen", "Norris", "Leclerc"}

	tests := []struct {
		name      string
		predicted [3]string
		want      int
	}{
		{
			name:      "all three exact",
			predicted: [3]string{"Verstappen", "Norris", "Leclerc"},
			want:      9,
		},
		{
			name:      "exact match different casing",
			predicted: [3]string{"VERSTAPPEN", "NORRIS", "LECLERC"},
			want:      9,
		},
		{
			name:      "no overlap with the podium",
			predicted: [3]string{"Hamilton", "Alonso", "Russell"},
			want:      0,
		},
		{
			name:      "winner exact, second and third swapped",
			predicted: [3]string{"Verstappen", "Leclerc", "Norris"},
			want:      5,
		},
		{
			name:      "right drivers, every slot wrong",
			predicted: [3]string{"Norris", "Leclerc", "Verstappen"},
			want:      3,
		},
		{
			name:      "only the winner correct",
			predicted: [3]string{"Verstappen", "Alonso", "Russell"},
			want:      3,
		},
		{
			name:      "one misplaced podium driver",
			predicted: [3]string{"Leclerc", "Alonso", "Russell"},
			want:      1,
		},
		{
			name:      "two exact, one misplaced",
			predicted: [3]string{"Verstappen", "Norris", "Verstappen"},
			want:      7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(official, tt.predicted); got != tt.want {
				t.Errorf("Score(%v, %v) = %d, want %d", official, tt.predicted, got, tt.want)
			}
		})
	}
}

func TestScoreIsCaseInsensitiveOnBothSides(t *testing.T) {
	official := [3]string{"verstappen", "NORRIS", "LeClerc"}
	predicted := [3]string{"VERSTAPPEN", "norris", "lEcLeRc"}
	if got := Score(official, predicted); got != MaxScore {
		t.Errorf("Score = %d, want %d", got, MaxScore)
	}
}
