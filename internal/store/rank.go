package store

import (
	"errors"
	"strings"
)

// Ranks are lowercase base36 strings ordered lexicographically. New ranks are
// fractional midpoints, so inserting between two neighbours never rewrites
// them.
const rankAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const (
	rankMinDigit = 0
	rankMaxDigit = len(rankAlphabet) - 1
	// rankMaxLen bounds the digit scan so malformed input cannot loop.
	rankMaxLen = 256
)

var (
	ErrNoRankSpace  = errors.New("no space between ranks")
	ErrRankOrder    = errors.New("rank bounds out of order")
	errInvalidRank  = errors.New("invalid rank character")
	errRankExhaust  = errors.New("unable to find unique rank")
	errRankInternal = errors.New("unable to compute rank between")
)

func normRank(r string) string { return strings.ToLower(strings.TrimSpace(r)) }

func rankDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'z':
		return 10 + int(c-'a'), true
	default:
		return 0, false
	}
}

// digitAt returns the digit of r at i, or def past the end of r.
func digitAt(r string, i, def int) (int, error) {
	if i >= len(r) {
		return def, nil
	}
	d, ok := rankDigit(r[i])
	if !ok {
		return 0, errInvalidRank
	}
	return d, nil
}

// RankBetween returns a rank strictly between lo and hi. Either bound may be
// empty, meaning unbounded on that side.
func RankBetween(lo, hi string) (string, error) {
	lo, hi = normRank(lo), normRank(hi)
	if lo != "" && hi != "" && lo >= hi {
		return "", ErrRankOrder
	}

	inside := func(r string) bool {
		return r != "" && (lo == "" || lo < r) && (hi == "" || r < hi)
	}

	prefix := make([]byte, 0, 8)
	hiOpen := hi == ""
	for i := 0; i < rankMaxLen; i++ {
		dl, err := digitAt(lo, i, rankMinDigit)
		if err != nil {
			return "", err
		}
		dh := rankMaxDigit
		if !hiOpen {
			if dh, err = digitAt(hi, i, rankMaxDigit); err != nil {
				return "", err
			}
		}

		switch {
		case dl == dh:
			prefix = append(prefix, rankAlphabet[dl])
		case dh-dl > 1:
			r := string(append(prefix, rankAlphabet[dl+(dh-dl)/2]))
			if !inside(r) {
				// hi extends lo by zero digits ("y" vs "y0"): nothing fits.
				return "", ErrNoRankSpace
			}
			return r, nil
		default:
			// Adjacent digits: keep lo's digit; hi no longer constrains the
			// rest.
			prefix = append(prefix, rankAlphabet[dl])
			hiOpen = true
		}
	}
	return "", errRankInternal
}

func RankAfter(lo string) (string, error)  { return RankBetween(lo, "") }
func RankBefore(hi string) (string, error) { return RankBetween("", hi) }

// RankBetweenUnique is RankBetween that also avoids every rank in taken (keys
// normalised with normRank). Collisions tighten the lower bound and retry.
func RankBetweenUnique(taken map[string]bool, lo, hi string) (string, error) {
	cur := normRank(lo)
	hi = normRank(hi)
	for i := 0; i < rankMaxLen; i++ {
		r, err := RankBetween(cur, hi)
		if err != nil {
			return "", err
		}
		if !taken[r] {
			return r, nil
		}
		cur = r
	}
	return "", errRankExhaust
}
