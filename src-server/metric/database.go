package metric

import (
	"context"
	"time"

	"levelup/src-server/model"
	"levelup/src-server/utils"
)

func database(as *utils.AppState) (time.Duration, error) {
	start := time.Now()
	if _, err := as.BunDB.NewSelect().
		Model((*model.GameType)(nil)).
		Where("label = ?", "").
		Exists(context.Background()); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
