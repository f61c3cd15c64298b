/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package loader builds a lookup Table from a delimited record source
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hydraresolver/hydra/pkg/encoding"
	"github.com/hydraresolver/hydra/pkg/guid"
	"github.com/hydraresolver/hydra/pkg/lookup"
	"github.com/hydraresolver/hydra/pkg/lookup/options"
	"github.com/hydraresolver/hydra/pkg/observability/logging"
	"github.com/hydraresolver/hydra/pkg/observability/metrics"
)

// ErrMissingColumn is an error for a record too short to hold the guid or url column
var ErrMissingColumn = errors.New("record is missing a configured column")

// progressInterval is the number of records between progress log events
const progressInterval = 100000

// LoadFile loads a Table from the file at o.SourcePath. Files whose
// extension names a codec (.gz, .gzip, .zst, .zstd, .br or .sz) are
// decompressed while reading.
func LoadFile(ctx context.Context, o *options.Options, log logging.Logger) (*lookup.Table, error) {
	if o == nil {
		o = options.New()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NoopLogger()
	}

	start := time.Now()
	log.Info("loading lookup table", logging.Pairs{"sourcePath": o.SourcePath})

	f, err := os.Open(o.SourcePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if codec := encoding.ForPath(o.SourcePath); codec != nil {
		rc, err := codec.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", o.SourcePath, err)
		}
		defer rc.Close()
		r = rc
	}

	t, err := Load(ctx, r, o, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.SourcePath, err)
	}

	elapsed := time.Since(start)
	metrics.LookupTableEntries.Set(float64(t.Len()))
	metrics.LookupLoadDuration.Set(elapsed.Seconds())
	log.Info("lookup table loaded", logging.Pairs{
		"sourcePath": o.SourcePath,
		"entries":    t.Len(),
		"elapsed":    elapsed.String(),
	})
	return t, nil
}

// Load reads delimited records from r into a Table. Any malformed record,
// missing column or empty normalized GUID aborts the load.
func Load(ctx context.Context, r io.Reader, o *options.Options, log logging.Logger) (*lookup.Table, error) {
	if o == nil {
		o = options.New()
	}
	if log == nil {
		log = logging.NoopLogger()
	}
	cr := csv.NewReader(r)
	cr.Comma = o.Comma()
	cr.ReuseRecord = true

	minFields := o.GUIDColumn
	if o.URLColumn > minFields {
		minFields = o.URLColumn
	}
	minFields++

	b := lookup.NewBuilder()
	var n int
	for {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		n++
		if n == 1 && o.HasHeader {
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < minFields {
			return nil, fmt.Errorf("line %d: %w", line, ErrMissingColumn)
		}
		// stored keys use the same normalization as request tokens
		if err := b.Set(guid.Normalize(rec[o.GUIDColumn]), rec[o.URLColumn]); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if n%progressInterval == 0 {
			log.Debug("lookup table load progress", logging.Pairs{"records": n})
		}
	}
	return b.Build(), nil
}
