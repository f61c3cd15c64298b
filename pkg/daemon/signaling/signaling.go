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

// Package signaling blocks the daemon until it is asked to stop
package signaling

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hydraresolver/hydra/pkg/observability/logging"
)

// Wait blocks until SIGINT or SIGTERM is received, ctx is done, or a value
// arrives on errs. It returns the error received, if any. SIGHUP is logged
// and ignored since the lookup table is never reloaded while serving.
func Wait(ctx context.Context, log logging.Logger, errs <-chan error) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			return err
		case sig := <-sigs:
			switch sig {
			case syscall.SIGHUP:
				log.Warn("configuration reload is not supported, restart to apply changes",
					logging.Pairs{"signal": sig.String()})
			case syscall.SIGINT, syscall.SIGTERM:
				log.Info("shutdown signal received", logging.Pairs{"signal": sig.String()})
				return nil
			}
		}
	}
}
