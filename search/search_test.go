package search

import (
	"errors"
	"testing"
)

// linear selects ten markers per unit of density, up to a ceiling.
func linear(ceiling int) CountFunc {
	return func(density float64) (int, error) {
		n := int(density * 10)
		if n > ceiling {
			n = ceiling
		}
		return n, nil
	}
}

type searchExpectation struct {
	Initial   float64
	Target    int
	Available int
}

func TestSearchLinear(t *testing.T) {
	for _, v := range []searchExpectation{
		{5, 237, 1000},  // bracket upward
		{30, 12, 1000},  // bracket downward
		{0.3, 1, 1000},  // bracket downward past zero by halving
		{4.2, 42, 1000}, // initial guess is already exact
		{60, 999, 1000},
	} {
		res, err := Search(linear(1000), v.Initial, v.Target, v.Available)
		if err != nil {
			t.Fatalf("\nError with input: %+v\n%v", v, err)
		}
		if !res.Exact() {
			t.Fatalf("\nError with input: %+v\nResult: %+v", v, res)
		}
		if n, _ := linear(1000)(res.Density); n != v.Target {
			t.Fatalf("\nError with input: %+v\nDensity %v selects %d", v, res.Density, n)
		}
	}
}

func TestSearchExactInitialGuess(t *testing.T) {
	res, err := Search(linear(100), 4.25, 42, 100)
	if err != nil {
		t.Fatal(err)
	}
	if res.Density != 4.25 || res.Evaluations != 2 {
		t.Fatalf("expected the initial guess to be returned immediately, got %+v", res)
	}
}

func TestSearchClosestWhenInexact(t *testing.T) {
	evens := func(density float64) (int, error) {
		return 2 * int(density*10), nil
	}

	res, err := Search(evens, 0.1, 7, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if res.Exact() {
		t.Fatalf("only even counts are possible, got %+v", res)
	}
	if res.Count != 6 && res.Count != 8 {
		t.Fatalf("expected the closest count (6 or 8), got %+v", res)
	}
	if res.Evaluations > 1+MaxBracketSteps+MaxBisections {
		t.Fatalf("search exceeded its evaluation budget: %+v", res)
	}
}

func TestBracketNoInterval(t *testing.T) {
	calls := 0
	flat := func(density float64) (int, error) {
		calls++
		return 10, nil
	}

	_, evaluations, err := Bracket(flat, 1, 20, 100)
	if !errors.Is(err, ErrNoInterval) {
		t.Fatalf("expected ErrNoInterval, got %v", err)
	}
	if evaluations != MaxBracketSteps+1 || calls != evaluations {
		t.Fatalf("expected %d evaluations, got %d (calls %d)", MaxBracketSteps+1, evaluations, calls)
	}
}

func TestBracketUnreachable(t *testing.T) {
	_, _, err := Bracket(linear(50), 1, 60, 50)
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestBracketOrdering(t *testing.T) {
	count := linear(1000)
	for _, v := range []searchExpectation{
		{5, 237, 1000},
		{30, 12, 1000},
		{0.3, 1, 1000},
	} {
		iv, _, err := Bracket(count, v.Initial, v.Target, v.Available)
		if err != nil {
			t.Fatal(err)
		}
		low, _ := count(iv.Low)
		high, _ := count(iv.High)
		if low > v.Target || high <= v.Target || iv.Low >= iv.High {
			t.Fatalf("\nError with input: %+v\nInterval: %+v (counts %d, %d)", v, iv, low, high)
		}
	}
}

func TestBisectPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := Bisect(func(float64) (int, error) { return 0, boom }, Interval{1, 2}, 3)
	if !errors.Is(err, boom) {
		t.Fatalf("expected the evaluation error, got %v", err)
	}
}

func TestMemoize(t *testing.T) {
	calls := 0
	count := Memoize(func(density float64) (int, error) {
		calls++
		return int(density), nil
	})

	for i := 0; i < 3; i++ {
		if n, err := count(7.5); err != nil || n != 7 {
			t.Fatalf("unexpected result %d, %v", n, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 underlying evaluation, got %d", calls)
	}
}

func TestSearchRejectsBadInitial(t *testing.T) {
	for _, initial := range []float64{0, -1} {
		if _, err := Search(linear(10), initial, 5, 10); err == nil {
			t.Errorf("initial %v: expected an error", initial)
		}
	}
}
