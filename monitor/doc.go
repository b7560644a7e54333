// Package monitor implements the liveness and status endpoints of a service.
//
// A Monitor is built once from Options. Building it validates the options,
// fills in defaults and resolves build metadata (revision and summary) so that
// every later request reads the same cached values. At request time the
// configured checks run in order, one after another, and the first failure
// aborts the request:
//
//	m, err := monitor.New(ctx, monitor.Options{
//	    App: "billing",
//	    Checks: []monitor.CheckDefinition{{
//	        Name:         "db",
//	        Check:        monitor.CheckFunc(func(ctx context.Context) (any, error) { return nil, db.PingContext(ctx) }),
//	        ResultSchema: monitor.Schema{"type": "null"},
//	    }},
//	})
//	if err != nil {
//	    return err // *monitor.ValidationError
//	}
//	m.Routes(router) // GET /_monitor/ping, GET /_monitor/status
//
// Checks have no timeout imposed on them. A check that never returns holds
// its request open until the request context is cancelled, and only if the
// check honours that context.
package monitor
