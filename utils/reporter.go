package utils

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/ndesc/ndesc-api/config"
)

// Report records an unexpected failure under its tracking tag: it always
// logs locally, then notifies the operator by email when one is configured.
// Mail delivery is best-effort and asynchronous; a mail failure is only
// logged.
func Report(tag string, err error) {
	stack := debug.Stack()
	if Sugar != nil {
		Sugar.Errorw("unexpected failure", "tag", tag, "error", err, "stack", string(stack))
	} else {
		Errorf("[%s] unexpected failure: %v", tag, err)
	}

	cfg := config.Get()
	if cfg.OperatorEmail == "" {
		return
	}

	body := fmt.Sprintf("time: %s\ntag: %s\nerror: %v\n\n%s",
		time.Now().Format(time.RFC3339), tag, err, stack)
	go func() {
		if mailErr := SendMail(cfg.OperatorEmail, "API failure "+tag, body); mailErr != nil {
			Warnf("operator mail for %s failed: %v", tag, mailErr)
		}
	}()
}
