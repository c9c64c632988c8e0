package campaign

// Flag reads a narrative/quest flag. Unset flags are false.
func (c *Campaign) Flag(id string) bool { return c.flags[id] }

// SetFlag sets or clears a flag. Empty ids are refused. An event is
// published only when the stored value actually changes.
func (c *Campaign) SetFlag(id string, value bool) bool {
	if id == "" {
		return false
	}
	if c.flags[id] == value {
		return true
	}
	if value {
		c.flags[id] = true
	} else {
		delete(c.flags, id)
	}
	c.publish(FlagChanged{FlagID: id, Value: value})
	return true
}
