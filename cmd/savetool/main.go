package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"starhold.gg/internal/campaign"
	"starhold.gg/internal/catalog"
	"starhold.gg/internal/persistence/save"
	"starhold.gg/internal/tuning"
)

func main() {
	var (
		savePath   = flag.String("save", "", "path to .sav.zst")
		configDir  = flag.String("configs", "", "config directory (validate the save against catalogs, optional)")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		journalDir = flag.String("journal", "", "journal dir containing events-*.jsonl.zst (optional)")
		fromDay    = flag.Int("from_day", 0, "only print journal entries from this day on")
	)
	flag.Parse()

	if *savePath == "" {
		fmt.Fprintln(os.Stderr, "missing -save")
		os.Exit(2)
	}

	snap, hdr, err := save.Read(*savePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read save:", err)
		os.Exit(1)
	}

	alive := 0
	for _, cm := range snap.Crew {
		if cm.Alive {
			alive++
		}
	}
	fmt.Printf("save v%d campaign=%s day=%d credits=%d crew=%d/%d items=%d modules=%d hull=%d flags=%d missions=%d/%d\n",
		hdr.Version, hdr.CampaignID, snap.Day, snap.Resources[campaign.ResourceCredits],
		alive, len(snap.Crew), len(snap.Items), len(snap.Ship.Modules), snap.Ship.Hull,
		len(snap.Flags), snap.Stats.MissionsCompleted, snap.Stats.MissionsFailed)

	if *configDir != "" {
		cats, err := catalog.Load(*configDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load catalogs:", err)
			os.Exit(1)
		}
		tp := strings.TrimSpace(*tuningPath)
		if tp == "" {
			tp = filepath.Join(*configDir, "tuning.yaml")
		}
		tune, err := tuning.Load(tp)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load tuning:", err)
			os.Exit(1)
		}
		if _, err := campaign.Restore(tune.Config(), cats, nil, snap); err != nil {
			fmt.Fprintln(os.Stderr, "restore:", err)
			os.Exit(1)
		}
		fmt.Println("restore ok: all catalog references resolve")
	}

	if *journalDir == "" {
		return
	}
	files, err := listJournalFiles(*journalDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list journal:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no journal files found in", *journalDir)
		os.Exit(1)
	}
	var printed int
	for _, path := range files {
		n, err := dumpJournalFile(path, *fromDay)
		if err != nil {
			fmt.Fprintln(os.Stderr, "journal:", err)
			os.Exit(1)
		}
		printed += n
	}
	fmt.Printf("journal: %d entries\n", printed)
}

func listJournalFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "events-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out, nil
}

func dumpJournalFile(path string, fromDay int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return 0, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	// persistlog.JournalEntry carries the event as an interface; decode the
	// payload raw for printing.
	type rawEntry struct {
		Day   int                `json:"day"`
		Kind  campaign.EventKind `json:"kind"`
		Event json.RawMessage    `json:"event"`
	}

	var printed int
	for sc.Scan() {
		var entry rawEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return printed, fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		if entry.Day < fromDay {
			continue
		}
		fmt.Printf("day=%d kind=%s %s\n", entry.Day, entry.Kind, entry.Event)
		printed++
	}
	return printed, sc.Err()
}
