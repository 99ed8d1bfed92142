package model

import (
	"encoding/json"
	"fmt"
)

// TimeSignature travels over the wire as a two element array, e.g. [4, 4].
type TimeSignature struct {
	Numerator   uint8
	Denominator uint8
}

func (ts TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", ts.Numerator, ts.Denominator)
}

func (ts TimeSignature) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{int(ts.Numerator), int(ts.Denominator)})
}

func (ts *TimeSignature) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("time signature needs 2 values, got %d", len(pair))
	}
	for _, v := range pair {
		if v < 1 || v > 255 {
			return fmt.Errorf("time signature value out of range: %d", v)
		}
	}
	ts.Numerator = uint8(pair[0])
	ts.Denominator = uint8(pair[1])
	return nil
}
