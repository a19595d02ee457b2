package common

import "testing"

func TestKiBToString(t *testing.T) {
	inputs := []int64{1024, 51200, 128000, 5632, 5376}
	expects := []string{"1.00 KiB", "50.00 KiB", "125.00 KiB", "5.50 KiB", "5.25 KiB"}

	for k, v := range inputs {
		output := ByteSizeToString(v)
		if output != expects[k] {
			t.Errorf("FAIL: Expected %s, got %s", expects[k], output)
		} else {
			t.Logf("PASS: Expected %s, got %s", expects[k], output)
		}
	}
}

func TestMiBToString(t *testing.T) {
	inputs := []int64{1048576, 52428800, 131072000, 5767168, 5505024}
	expects := []string{"1.00 MiB", "50.00 MiB", "125.00 MiB", "5.50 MiB", "5.25 MiB"}

	for k, v := range inputs {
		output := ByteSizeToString(v)
		if output != expects[k] {
			t.Errorf("FAIL: Expected %s, got %s", expects[k], output)
		}
	}
}

func TestGiBToString(t *testing.T) {
	inputs := []int64{1073741824, 53687091200, 5905580032}
	expects := []string{"1.00 GiB", "50.00 GiB", "5.50 GiB"}

	for k, v := range inputs {
		output := ByteSizeToString(v)
		if output != expects[k] {
			t.Errorf("FAIL: Expected %s, got %s", expects[k], output)
		}
	}
}

func TestSmallSizesStayInBytes(t *testing.T) {
	for size, expect := range map[int64]string{0: "0.00 B", 1: "1.00 B", 1023: "1023.00 B"} {
		if output := ByteSizeToString(size); output != expect {
			t.Errorf("FAIL: Expected %s, got %s", expect, output)
		}
	}
}
