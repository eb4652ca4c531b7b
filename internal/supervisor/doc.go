// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

/*
Package supervisor runs the long-lived parts of "ratingcf serve" under a
suture v4 supervisor tree.

# Overview

	RootSupervisor ("ratingcf")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── ReportMaintenanceService (if reports.path is set)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures independently: a maintenance service that keeps
failing backs off on its own while the HTTP server keeps answering.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout, logger))
	tree.AddMaintenanceService(services.NewReportMaintenanceService(reports, cfg.Reports.Retain, cfg.Reports.GCInterval, logger))
	return tree.Serve(ctx)

Supervisor events (service start, failure, backoff) are logged through the
sutureslog hook. The slog handler passed in is normally the zerolog bridge
from the logging package, so the events share the process log stream.

See the services subpackage for the service implementations.
*/
package supervisor
