package driver

import (
	"encoding/binary"
	"encoding/hex"
	"slices"
	"strings"

	"github.com/zeebo/xxh3"

	"lintel/internal/analyzer"
	"lintel/internal/version"
)

// Digest is a 128-bit xxh3 fingerprint of file content or of a rule set.
type Digest [16]byte

func (d Digest) IsZero() bool { return d == Digest{} }

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// ContentDigest hashes the bytes of one file.
func ContentDigest(content []byte) Digest {
	return Digest(xxh3.Hash128(content).Bytes())
}

// combineDigest: H(a || b || ...). Parts must be in a deterministic order.
func combineDigest(parts ...Digest) Digest {
	h := xxh3.New()
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	return Digest(h.Sum128().Bytes())
}

// RuleSetDigest fingerprints everything besides file content that changes
// what a check reports: the build, the rules that would run with their
// effective severity, the category and range filters, and salt for inputs
// the registry does not expose (rule options).
func RuleSetDigest(reg *analyzer.Registry, opts analyzer.Options, salt ...string) Digest {
	h := xxh3.New()
	_, _ = h.WriteString(version.Version)
	_, _ = h.Write([]byte{0})

	var buf [8]byte
	for m := range reg.Rules() {
		if !opts.Filter.Allows(m) {
			continue
		}
		sev := m.Severity
		if s, ok := opts.Severity[m.Key()]; ok {
			sev = s
		}
		_, _ = h.WriteString(m.Key().String())
		buf[0] = byte(sev)
		_, _ = h.Write(buf[:1])
	}

	buf[0] = byte(opts.Filter.Categories)
	buf[1] = 0
	if opts.Filter.ReportUnusedSuppressions {
		buf[1] = 1
	}
	_, _ = h.Write(buf[:2])
	if r := opts.Filter.Range; r != nil {
		binary.LittleEndian.PutUint32(buf[:4], r.Start)
		binary.LittleEndian.PutUint32(buf[4:], r.End)
		_, _ = h.Write(buf[:])
	}

	sorted := slices.Clone(salt)
	slices.Sort(sorted)
	_, _ = h.WriteString(strings.Join(sorted, "\x00"))
	return Digest(h.Sum128().Bytes())
}
