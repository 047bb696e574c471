// Copyright 2026 AgentFlow Authors
// Use of this source code is governed by the project license.

/*
Package persistence is the append-only artifact store every trial
writes through. A RunStore roots a run directory; the Run it returns
owns that directory's file layout:

	runs/<run_id>/
	  run_metadata.json
	  results.jsonl
	  transcripts/<trial_id>.json
	  intermediate/<trial_id>/
	    extraction.json
	    verification_v1.json ... verification_vN.json
	    adjudication.json
	    grading.json

Every file is written exactly once with an atomic write-to-temp-then-
rename, except results.jsonl, which is opened in append mode — one
line per trial, never rewritten. No writer reads and rewrites a file
it has already written; ReadResults tolerates and skips malformed
JSONL lines rather than repairing or mutating them.
*/
package persistence
