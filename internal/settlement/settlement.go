package settlement

import (
	"errors"
	"f1_predictions/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Precondition failures reported to the caller verbatim.
var (
	ErrResultNotFound = errors.New("official result not found for this race")
	ErrRaceNotFound   = errors.New("race not found")
	ErrAlreadySettled = errors.New("race has already been settled")
)

// Outcome summarizes a completed settlement run.
type Outcome struct {
	RaceID            uint   `json:"raceId"`            // Settled race ID
	RaceName          string `json:"raceName"`          // Settled race name
	PredictionsScored int    `json:"predictionsScored"` // Predictions that received a score
}

// Engine scores every prediction for a race against its official result and
// credits user totals, exactly once per race.
type Engine struct {
	db *gorm.DB
}

// NewEngine returns a settlement engine backed by the given database handle.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Settle runs settlement for one race. The whole run executes inside a
// single transaction: a storage failure mid-loop rolls back every score and
// total written so far, leaving the race open for a clean retry.
//
// The completed flag is flipped with a conditional update inside the
// transaction, so two concurrent calls for the same race cannot both pass
// the guard and double-credit users.
func (e *Engine) Settle(raceID uint) (*Outcome, error) {
	var outcome Outcome
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var result domain.RaceResult
		if err := tx.Where("race_id = ?", raceID).First(&result).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResultNotFound
			}
			return err
		}
		var race domain.Race
		if err := tx.First(&race, raceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRaceNotFound
			}
			return err
		}
		// Close the race up front. Zero rows affected means another
		// settlement already claimed it.
		closed := tx.Model(&domain.Race{}).
			Where("id = ? AND is_race_completed = ?", raceID, false).
			Updates(map[string]any{
				"is_prediction_open": false,
				"is_race_completed":  true,
			})
		if closed.Error != nil {
			return closed.Error
		}
		if closed.RowsAffected == 0 {
			return ErrAlreadySettled
		}

		official := [3]string{result.OfficialWinner, result.OfficialSecond, result.OfficialThird}

		var predictions []domain.Prediction
		if err := tx.Where("race_id = ?", raceID).Find(&predictions).Error; err != nil {
			return err
		}
		for i := range predictions {
			p := &predictions[i]
			// A blank driver name should not block every other
			// user's scoring.
			if p.PredictedWinner == "" || p.PredictedSecond == "" || p.PredictedThird == "" {
				logrus.WithFields(logrus.Fields{
					"prediction_id": p.ID,     // Prediction ID
					"race_id":       raceID,   // Race being settled
					"user_id":       p.UserID, // Prediction owner
				}).Warn("Skipping malformed prediction")
				continue
			}
			score := Score(official, [3]string{p.PredictedWinner, p.PredictedSecond, p.PredictedThird})
			if err := tx.Model(p).Update("score", score).Error; err != nil {
				return err
			}
			// Atomic increment, no read-modify-write on the user row.
			credited := tx.Model(&domain.User{}).
				Where("id = ?", p.UserID).
				Update("total_score", gorm.Expr("total_score + ?", score))
			if credited.Error != nil {
				return credited.Error
			}
			if credited.RowsAffected == 0 {
				// Owner vanished; keep the prediction's score.
				logrus.WithFields(logrus.Fields{
					"prediction_id": p.ID,
					"race_id":       raceID,
					"user_id":       p.UserID,
					"score":         score,
				}).Warn("Prediction owner not found, total not credited")
			}
			outcome.PredictionsScored++
		}
		outcome.RaceID = race.ID
		outcome.RaceName = race.Name
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"race_id":            outcome.RaceID,            // Settled race ID
		"race_name":          outcome.RaceName,          // Settled race name
		"predictions_scored": outcome.PredictionsScored, // Count of scored predictions
	}).Info("Race settled")
	return &outcome, nil
}
