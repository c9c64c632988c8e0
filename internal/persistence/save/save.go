package save

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"starhold.gg/internal/campaign"
)

// CurrentVersion is written into every new save header.
const CurrentVersion = 2

// Header is the uncompressed-decodable first line of a save file: one JSON
// object, newline-terminated, followed by the version-specific body. Readers
// decide how to decode the body from Header.Version alone.
type Header struct {
	Version    int    `json:"version"`
	CampaignID string `json:"campaign_id,omitempty"`
	Day        int    `json:"day"`
}

// SaveV1 is the legacy save body. Crew carried a single aptitude value
// before the six-stat model; MigrateV1 folds it into every stat. Jobs and
// encounters did not exist in v1 saves.
type SaveV1 struct {
	Day              int            `json:"day"`
	Resources        map[string]int `json:"resources"`
	LifetimeEarnings int            `json:"lifetime_earnings"`

	Crew       []CrewV1 `json:"crew"`
	NextCrewID int      `json:"next_crew_id"`

	Items      []campaign.ItemSnapshot `json:"items"`
	NextItemID int                     `json:"next_item_id"`

	Ship         campaign.ShipSnapshot `json:"ship"`
	NextModuleID int                   `json:"next_module_id"`

	Flags      []string       `json:"flags,omitempty"`
	Reputation map[string]int `json:"reputation,omitempty"`

	Stats campaign.StatsSnapshot `json:"stats"`

	RNGSeed  int64  `json:"rng_seed"`
	RNGDraws uint64 `json:"rng_draws"`
}

type CrewV1 struct {
	ID        int                      `json:"id"`
	Name      string                   `json:"name"`
	Role      string                   `json:"role,omitempty"`
	Skill     int                      `json:"skill"`
	XP        int                      `json:"xp"`
	Level     int                      `json:"level"`
	Traits    []string                 `json:"traits,omitempty"`
	Injuries  []string                 `json:"injuries,omitempty"`
	Alive     bool                     `json:"alive"`
	Equipment map[campaign.Slot]int    `json:"equipment,omitempty"`
}

// Write encodes a snapshot as a zstd-compressed save file: a JSON header
// line, then the JSON body. The directory is created as needed.
func Write(path, campaignID string, snap *campaign.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("save: nil snapshot")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 64*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(Header{Version: CurrentVersion, CampaignID: campaignID, Day: snap.Day})
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := json.NewEncoder(bw).Encode(snap); err != nil {
		return fmt.Errorf("save: encode body: %w", err)
	}
	return nil
}

// Read decodes a save file of any supported version into the current
// snapshot shape.
func Read(path string) (*campaign.Snapshot, Header, error) {
	var hdr Header
	f, err := os.Open(path)
	if err != nil {
		return nil, hdr, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, hdr, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, hdr, fmt.Errorf("save: read header: %w", err)
	}
	if err := json.Unmarshal(line, &hdr); err != nil {
		return nil, hdr, fmt.Errorf("save: decode header: %w", err)
	}

	switch hdr.Version {
	case 2:
		var snap campaign.Snapshot
		if err := json.NewDecoder(br).Decode(&snap); err != nil {
			return nil, hdr, fmt.Errorf("save: decode v2 body: %w", err)
		}
		return &snap, hdr, nil
	case 1:
		var body SaveV1
		if err := json.NewDecoder(br).Decode(&body); err != nil {
			return nil, hdr, fmt.Errorf("save: decode v1 body: %w", err)
		}
		return MigrateV1(&body), hdr, nil
	default:
		return nil, hdr, fmt.Errorf("save: unsupported version %d", hdr.Version)
	}
}

// MigrateV1 lifts a legacy body into the current snapshot shape. The single
// skill value becomes the starting point of all six stats; everything v1
// never tracked (jobs, encounters) starts empty.
func MigrateV1(body *SaveV1) *campaign.Snapshot {
	snap := &campaign.Snapshot{
		Day:              body.Day,
		Resources:        map[campaign.Resource]int{},
		LifetimeEarnings: body.LifetimeEarnings,
		NextCrewID:       body.NextCrewID,
		Items:            body.Items,
		NextItemID:       body.NextItemID,
		Ship:             body.Ship,
		NextModuleID:     body.NextModuleID,
		Flags:            body.Flags,
		Reputation:       body.Reputation,
		Stats:            body.Stats,
		RNGSeed:          body.RNGSeed,
		RNGDraws:         body.RNGDraws,
	}
	for k, v := range body.Resources {
		snap.Resources[campaign.Resource(k)] = v
	}
	for _, cv := range body.Crew {
		cs := campaign.CrewSnapshot{
			ID:        cv.ID,
			Name:      cv.Name,
			Role:      cv.Role,
			Base:      map[campaign.Stat]int{},
			XP:        cv.XP,
			Level:     cv.Level,
			Traits:    cv.Traits,
			Injuries:  cv.Injuries,
			Alive:     cv.Alive,
			Equipment: cv.Equipment,
		}
		for _, st := range campaign.AllStats {
			cs.Base[st] = cv.Skill
		}
		snap.Crew = append(snap.Crew, cs)
	}
	return snap
}
