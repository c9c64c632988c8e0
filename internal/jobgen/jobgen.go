// Package jobgen procedurally generates job offers from the faction
// catalog. All randomness comes from the campaign's own stream, so offer
// boards are reproducible per seed.
package jobgen

import (
	"fmt"
	"sort"

	"starhold.gg/internal/campaign"
	"starhold.gg/internal/catalog"
)

// Tier bounds for generated rewards.
const (
	minReward    = 80
	rewardStep   = 40
	maxTier      = 5
	minDeadline  = 3
	deadlineSpan = 7
)

type Generator struct {
	factions []catalog.FactionDef
}

func New(cats *catalog.Catalogs) *Generator {
	g := &Generator{}
	for _, f := range cats.Factions.Defs {
		g.factions = append(g.factions, f)
	}
	// Map order is random; offer generation must not be.
	sort.Slice(g.factions, func(i, j int) bool { return g.factions[i].ID < g.factions[j].ID })
	return g
}

// Offers implements campaign.JobSource.
func (g *Generator) Offers(n int, rng *campaign.RNG) []*campaign.Job {
	if len(g.factions) == 0 || n <= 0 {
		return nil
	}
	jobs := make([]*campaign.Job, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, g.one(rng))
	}
	return jobs
}

func (g *Generator) one(rng *campaign.RNG) *campaign.Job {
	employer := g.factions[rng.NextInt(len(g.factions))]
	tier := 1 + rng.NextInt(maxTier)

	j := &campaign.Job{
		OriginID:   fmt.Sprintf("station_%02d", 1+rng.NextInt(20)),
		TargetID:   fmt.Sprintf("site_%02d", 1+rng.NextInt(40)),
		EmployerID: employer.ID,
		Reward: campaign.Reward{
			Credits: minReward + tier*rewardStep + rng.NextInt(rewardStep),
		},
		RepSuccess:   map[string]int{employer.ID: 2 + tier},
		RepFailure:   map[string]int{employer.ID: -(2 + tier)},
		DeadlineDays: minDeadline + rng.NextInt(deadlineSpan),
	}

	// Higher tiers sometimes pay in materiel on top of credits.
	if tier >= 3 && rng.NextInt(2) == 0 {
		j.Reward.Resources = map[campaign.Resource]int{
			campaign.ResourceAmmo: tier * 5,
		}
	}

	// Jobs against a rival faction cost standing with them.
	if len(g.factions) > 1 && rng.NextInt(3) == 0 {
		rival := g.factions[rng.NextInt(len(g.factions))]
		if rival.ID != employer.ID {
			j.TargetFactionID = rival.ID
			j.RepSuccess[rival.ID] = -tier
		}
	}
	return j
}
