package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"starhold.gg/internal/campaign"
	"starhold.gg/internal/catalog"
	"starhold.gg/internal/jobgen"
	persistlog "starhold.gg/internal/persistence/log"
	"starhold.gg/internal/persistence/save"
	"starhold.gg/internal/persistence/savedb"
	"starhold.gg/internal/protocol"
	"starhold.gg/internal/session"
	"starhold.gg/internal/transport/observer"
	"starhold.gg/internal/tuning"
)

func main() {
	var (
		addr       = flag.String("addr", "127.0.0.1:8080", "http listen address")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		slot       = flag.String("slot", "slot1", "save slot")
		seed       = flag.Int64("seed", 0, "campaign seed (overrides tuning; used only for fresh campaigns)")
		savePath   = flag.String("save", "", "path to save file to load (optional)")
		loadLatest = flag.Bool("load_latest_save", true, "resume from the slot's latest save if present (when -save is empty)")
		disableDB  = flag.Bool("disable_db", false, "disable the save index db")
		autosave   = flag.Duration("autosave", 5*time.Minute, "autosave interval (0 to disable)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[campaignd] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalog.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	campaignDir := filepath.Join(*dataDir, "campaigns", *slot)
	_ = os.MkdirAll(filepath.Join(campaignDir, "saves"), 0o755)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		logger.Fatalf("load tuning: %v", err)
	}
	cfg := tune.Config()
	if *seed != 0 {
		cfg.Seed = *seed
	}

	var idx *savedb.SQLiteIndex
	if !*disableDB {
		idx, err = savedb.OpenSQLite(filepath.Join(campaignDir, "index", "saves.db"))
		if err != nil {
			logger.Fatalf("open save index: %v", err)
		}
		defer idx.Close()
	}

	jobs := jobgen.New(cats)

	// Create campaign (fresh or resumed from a save).
	saveToLoad := strings.TrimSpace(*savePath)
	if saveToLoad == "" && *loadLatest && idx != nil {
		if rec, ok, err := idx.Latest(*slot); err != nil {
			logger.Fatalf("save index: %v", err)
		} else if ok {
			saveToLoad = rec.Path
		}
	}

	var c *campaign.Campaign
	campaignID := uuid.NewString()
	if saveToLoad != "" {
		snap, hdr, err := save.Read(saveToLoad)
		if err != nil {
			logger.Fatalf("read save: %v", err)
		}
		c, err = campaign.Restore(cfg, cats, jobs, snap)
		if err != nil {
			logger.Fatalf("restore: %v", err)
		}
		if hdr.CampaignID != "" {
			campaignID = hdr.CampaignID
		}
		logger.Printf("resumed campaign=%s from save=%s day=%d", campaignID, filepath.Base(saveToLoad), c.Day())
	} else {
		c, err = campaign.New(cfg, cats, jobs)
		if err != nil {
			logger.Fatalf("campaign: %v", err)
		}
		logger.Printf("fresh campaign=%s seed=%d", campaignID, cfg.Seed)
	}

	journal := persistlog.NewEventJournal(campaignDir)
	journal.Attach(c)
	defer journal.Close()

	sess := session.New(c, logger)
	sess.Start()

	ctx, cancel := signalContext()
	defer cancel()

	if *autosave > 0 {
		go func() {
			t := time.NewTicker(*autosave)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					writeSave(sess, idx, campaignDir, campaignID, *slot, logger)
				}
			}
		}()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		sum, ok := sess.Summary()
		if !ok {
			rw.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")
		writeMetrics(rw, *slot, sum)
	})
	observer.NewServer(sess, idx, logger).Routes(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}

	// Final save before the session goes down.
	writeSave(sess, idx, campaignDir, campaignID, *slot, logger)
	sess.Close()
	if err := journal.Err(); err != nil {
		logger.Printf("journal: %v", err)
	}
}

func writeSave(sess *session.Session, idx *savedb.SQLiteIndex, campaignDir, campaignID, slot string, logger *log.Logger) {
	var snap *campaign.Snapshot
	if !sess.DoSync(func(c *campaign.Campaign) { snap = c.Snapshot() }) {
		return
	}
	path := filepath.Join(campaignDir, "saves", fmt.Sprintf("day%06d.sav.zst", snap.Day))
	if err := save.Write(path, campaignID, snap); err != nil {
		logger.Printf("save write: %v", err)
		return
	}
	digest, err := fileDigest(path)
	if err != nil {
		logger.Printf("save digest: %v", err)
		return
	}
	if idx != nil {
		idx.RecordSave(campaignID, slot, path, digest, snap)
	}
	logger.Printf("saved day=%d path=%s", snap.Day, filepath.Base(path))
}

func fileDigest(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func writeMetrics(rw http.ResponseWriter, slot string, sum protocol.Summary) {
	fmt.Fprintf(rw, "# HELP starhold_campaign_day Current campaign day.\n")
	fmt.Fprintf(rw, "# TYPE starhold_campaign_day gauge\n")
	fmt.Fprintf(rw, "starhold_campaign_day{slot=%q} %d\n", slot, sum.Day)

	fmt.Fprintf(rw, "# HELP starhold_campaign_resource Resource ledger amounts.\n")
	fmt.Fprintf(rw, "# TYPE starhold_campaign_resource gauge\n")
	for _, r := range campaign.AllResources {
		fmt.Fprintf(rw, "starhold_campaign_resource{slot=%q,resource=%q} %d\n", slot, string(r), sum.Resources[string(r)])
	}

	alive := 0
	for _, cm := range sum.Crew {
		if cm.Alive {
			alive++
		}
	}
	fmt.Fprintf(rw, "# HELP starhold_campaign_crew Roster counts.\n")
	fmt.Fprintf(rw, "# TYPE starhold_campaign_crew gauge\n")
	fmt.Fprintf(rw, "starhold_campaign_crew{slot=%q,state=%q} %d\n", slot, "alive", alive)
	fmt.Fprintf(rw, "starhold_campaign_crew{slot=%q,state=%q} %d\n", slot, "total", len(sum.Crew))

	fmt.Fprintf(rw, "# HELP starhold_campaign_hull Ship hull points.\n")
	fmt.Fprintf(rw, "# TYPE starhold_campaign_hull gauge\n")
	fmt.Fprintf(rw, "starhold_campaign_hull{slot=%q} %d\n", slot, sum.Ship.Hull)

	fmt.Fprintf(rw, "# HELP starhold_campaign_missions Lifetime mission counters.\n")
	fmt.Fprintf(rw, "# TYPE starhold_campaign_missions counter\n")
	fmt.Fprintf(rw, "starhold_campaign_missions{slot=%q,result=%q} %d\n", slot, "completed", sum.MissionsCompleted)
	fmt.Fprintf(rw, "starhold_campaign_missions{slot=%q,result=%q} %d\n", slot, "failed", sum.MissionsFailed)

	gameOver := 0
	if sum.GameOver {
		gameOver = 1
	}
	fmt.Fprintf(rw, "# HELP starhold_campaign_game_over Whether the campaign has ended.\n")
	fmt.Fprintf(rw, "# TYPE starhold_campaign_game_over gauge\n")
	fmt.Fprintf(rw, "starhold_campaign_game_over{slot=%q} %d\n", slot, gameOver)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
