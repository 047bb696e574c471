package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/shayo/shipeval/types"
)

// RunMetadata is written once, atomically, when a run starts.
type RunMetadata struct {
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"timestamp"`
	ScenarioID string    `json:"scenario_id"`
	Target     string    `json:"target"`
	AgentModel string    `json:"agent_model"`
	JudgeCount int       `json:"judge_count"`
	Seed       *int64    `json:"seed,omitempty"`
}

// RunStore roots every run directory under a fixed output directory.
type RunStore struct {
	outputDir string
	logger    *zap.Logger
}

// NewRunStore creates a RunStore rooted at outputDir, creating it if
// it doesn't already exist.
func NewRunStore(outputDir string, logger *zap.Logger) (*RunStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &RunStore{outputDir: outputDir, logger: logger}, nil
}

// CreateRun creates a fresh run directory (and its transcripts/ and
// intermediate/ subdirectories) named runID, returning a handle for
// writing to it. It is an error for the directory to already exist —
// run IDs are meant to be unique per invocation.
func (s *RunStore) CreateRun(runID string) (*Run, error) {
	dir := filepath.Join(s.outputDir, runID)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("run directory %s already exists", dir)
	}
	for _, sub := range []string{"", "transcripts", "intermediate"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("create run subdirectory %s: %w", sub, err)
		}
	}
	return &Run{dir: dir, runID: runID, logger: s.logger}, nil
}

// Run is a handle on one run_id's directory. Every write method is
// safe to call from a single trial's goroutine; concurrent trials
// must use distinct Run handles (distinct run directories), per the
// "no cross-trial shared state" resource policy.
type Run struct {
	dir    string
	runID  string
	logger *zap.Logger
}

// Dir returns the run's root directory.
func (r *Run) Dir() string { return r.dir }

// WriteRunMetadata atomically writes run_metadata.json. Called once,
// at run start.
func (r *Run) WriteRunMetadata(meta RunMetadata) error {
	return atomicWriteJSON(filepath.Join(r.dir, "run_metadata.json"), meta)
}

// AppendResult appends one TrialResult as a single JSONL line to
// results.jsonl. Safe to call once per trial; never rewrites prior
// lines.
func (r *Run) AppendResult(trial *types.TrialResult) error {
	f, err := os.OpenFile(filepath.Join(r.dir, "results.jsonl"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open results.jsonl: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(trial)
	if err != nil {
		return fmt.Errorf("marshal trial result: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append trial result: %w", err)
	}
	return nil
}

// WriteTranscript atomically writes transcripts/<trialID>.json.
func (r *Run) WriteTranscript(trialID string, conversation []types.ConversationTurn) error {
	path := filepath.Join(r.dir, "transcripts", trialID+".json")
	return atomicWriteJSON(path, conversation)
}

// WriteIntermediate atomically writes
// intermediate/<trialID>/<stage>.json. stage is one of "extraction",
// "verification_v<i>", "adjudication", "grading".
func (r *Run) WriteIntermediate(trialID, stage string, payload any) error {
	dir := filepath.Join(r.dir, "intermediate", trialID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create intermediate dir: %w", err)
	}
	return atomicWriteJSON(filepath.Join(dir, stage+".json"), payload)
}

// atomicWriteJSON marshals v and writes it to path via a temp file in
// the same directory, then renames over path. The temp-file-same-dir
// requirement keeps the rename on one filesystem, so it's atomic.
func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp file for %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file for %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadResults parses runDir/results.jsonl line by line, calling fn for
// each successfully decoded TrialResult. Malformed lines are skipped
// and logged, never mutated in place. ReadResults never rewrites the
// file.
func ReadResults(runDir string, logger *zap.Logger, fn func(*types.TrialResult) error) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	f, err := os.Open(filepath.Join(runDir, "results.jsonl"))
	if err != nil {
		return fmt.Errorf("open results.jsonl: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var trial types.TrialResult
		if err := json.Unmarshal(line, &trial); err != nil {
			logger.Warn("skipping malformed results.jsonl line",
				zap.String("run_dir", runDir), zap.Int("line", lineNum), zap.Error(err))
			continue
		}
		if err := fn(&trial); err != nil {
			return err
		}
	}
	return scanner.Err()
}
