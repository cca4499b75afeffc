package storagetest

import "github.com/papercomputeco/cultura/pkg/fact"

func texts(facts ...*fact.Fact) []string {
	out := make([]string, 0, len(facts))
	for _, f := range facts {
		out = append(out, f.Text)
	}
	return out
}
