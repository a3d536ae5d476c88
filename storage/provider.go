package storage

import "github.com/Yulian302/lfusys-services-requests/models"

// Provider picks the engine for a file from its random-write flag.
type Provider struct {
	sequential  Engine
	randomWrite Engine
}

func NewProvider(sequential, randomWrite Engine) *Provider {
	return &Provider{
		sequential:  sequential,
		randomWrite: randomWrite,
	}
}

func (p *Provider) ForFlag(supportsRandomWrite bool) Engine {
	if supportsRandomWrite {
		return p.randomWrite
	}
	return p.sequential
}

func (p *Provider) For(f models.FileDefinition) Engine {
	return p.ForFlag(f.SupportsRandomWrite)
}

// Engines returns the distinct configured engines, sequential first.
func (p *Provider) Engines() []Engine {
	if p.sequential == p.randomWrite {
		return []Engine{p.sequential}
	}
	return []Engine{p.sequential, p.randomWrite}
}
