package campaign

// Job is one contract: either an offer on the board or the single active
// job. Produced by an external generator (JobSource); the aggregate only
// moves jobs between board and active and settles their consequences.
type Job struct {
	ID int

	OriginID string
	TargetID string

	EmployerID      string
	TargetFactionID string

	Reward Reward

	// Reputation deltas per faction id, applied on mission resolution.
	RepSuccess map[string]int
	RepFailure map[string]int

	// DeadlineDays is the offer's duration; Deadline is the absolute day,
	// set once on acceptance (0 = not accepted / no deadline).
	DeadlineDays int
	Deadline     int
}

// Reward is a job payout.
type Reward struct {
	Credits   int
	Resources map[Resource]int
	Items     map[string]int // item definition id -> quantity
}

// CurrentJob returns the active contract, or nil.
func (c *Campaign) CurrentJob() *Job { return c.currentJob }

// Offers returns the job board. Read-only.
func (c *Campaign) Offers() []*Job { return c.offers }

// AddOffer places an externally generated job on the board, assigning its
// campaign-local id.
func (c *Campaign) AddOffer(j *Job) bool {
	if j == nil {
		return false
	}
	c.nextJobID++
	j.ID = c.nextJobID
	c.offers = append(c.offers, j)
	return true
}

// AcceptJob promotes an offer to the active contract, fixing its absolute
// deadline. Fails when another job is active or the id is not on the board.
func (c *Campaign) AcceptJob(jobID int) bool {
	if c.currentJob != nil {
		return false
	}
	idx := -1
	for i, j := range c.offers {
		if j.ID == jobID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	j := c.offers[idx]
	c.offers = append(c.offers[:idx], c.offers[idx+1:]...)
	if j.DeadlineDays > 0 {
		j.Deadline = c.day + j.DeadlineDays
	}
	c.currentJob = j
	c.publish(JobAccepted{JobID: j.ID, Employer: j.EmployerID, Deadline: j.Deadline})
	return true
}

// clearJob retires the active contract and refills the board if it ran dry.
func (c *Campaign) clearJob(success bool) {
	j := c.currentJob
	if j == nil {
		return
	}
	c.currentJob = nil
	c.publish(JobCompleted{JobID: j.ID, Success: success})
	c.refreshOffers()
}

func (c *Campaign) refreshOffers() {
	if len(c.offers) > 0 || c.jobSource == nil {
		return
	}
	for _, j := range c.jobSource.Offers(c.cfg.OfferCount, c.rng) {
		c.AddOffer(j)
	}
}
