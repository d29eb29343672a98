package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ahasite/sitediary/internal/models"
	"github.com/ahasite/sitediary/internal/storage"
)

const recordColumns = `id, project_title, contract_id, site_location, date, title,
	weather_temperature, weather_sky, weather_precipitation, weather_wind,
	start_time, end_time, progress, safety, materials, equipment, labor,
	issues, next_steps, tasks, notes, image_urls, signature, status,
	created_at, last_modified, created_by`

// Put inserts or fully replaces the record keyed by its id. LastModified is
// refreshed on every write and CreatedAt is preserved from the first
// persistence. The row write and the index state change are one transaction:
// a failed write leaves the prior state for that id untouched.
func (s *Store) Put(r models.Record) (models.Record, error) {
	if r.ID == "" {
		return models.Record{}, fmt.Errorf("record id must not be empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var createdAt string
	err = tx.QueryRow("SELECT created_at FROM records WHERE id = ?", r.ID).Scan(&createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}
	case err != nil:
		return models.Record{}, fmt.Errorf("failed to read existing record: %w", err)
	default:
		if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
			r.CreatedAt = t
		}
	}

	r.LastModified = time.Now().UTC()

	tasks, err := json.Marshal(r.Tasks)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to encode tasks: %w", err)
	}
	imageURLs, err := json.Marshal(r.ImageURLs)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to encode image urls: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_title = excluded.project_title,
			contract_id = excluded.contract_id,
			site_location = excluded.site_location,
			date = excluded.date,
			title = excluded.title,
			weather_temperature = excluded.weather_temperature,
			weather_sky = excluded.weather_sky,
			weather_precipitation = excluded.weather_precipitation,
			weather_wind = excluded.weather_wind,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			progress = excluded.progress,
			safety = excluded.safety,
			materials = excluded.materials,
			equipment = excluded.equipment,
			labor = excluded.labor,
			issues = excluded.issues,
			next_steps = excluded.next_steps,
			tasks = excluded.tasks,
			notes = excluded.notes,
			image_urls = excluded.image_urls,
			signature = excluded.signature,
			status = excluded.status,
			last_modified = excluded.last_modified,
			created_by = excluded.created_by`,
		r.ID, r.ProjectTitle, r.ContractID, r.SiteLocation, r.Date, r.Title,
		r.Weather.Temperature, r.Weather.Sky, r.Weather.Precipitation, r.Weather.Wind,
		r.WorkingHours.StartTime, r.WorkingHours.EndTime, r.Progress, r.Safety,
		r.Materials, r.Equipment, r.Labor, r.Issues, r.NextSteps,
		string(tasks), r.Notes, string(imageURLs), r.Signature, string(r.Status),
		r.CreatedAt.Format(time.RFC3339Nano), r.LastModified.Format(time.RFC3339Nano), r.CreatedBy,
	)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to write record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Record{}, fmt.Errorf("failed to commit record write: %w", err)
	}
	return r, nil
}

// Get returns the record or storage.ErrNotFound for a missing key.
func (s *Store) Get(id string) (models.Record, error) {
	row := s.db.QueryRow("SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, storage.ErrNotFound
	}
	return r, err
}

func (s *Store) GetAll() ([]models.Record, error) {
	return s.queryRecords("SELECT " + recordColumns + " FROM records ORDER BY last_modified")
}

// QueryByStatus returns records through the by-status index.
func (s *Store) QueryByStatus(status models.Status) ([]models.Record, error) {
	return s.queryRecords("SELECT "+recordColumns+" FROM records WHERE status = ? ORDER BY date", string(status))
}

// QueryByDateRange returns records whose date falls in [start, end], both
// inclusive, through the by-date index.
func (s *Store) QueryByDateRange(start, end string) ([]models.Record, error) {
	return s.queryRecords("SELECT "+recordColumns+" FROM records WHERE date >= ? AND date <= ? ORDER BY date", start, end)
}

// Delete removes the record and its index entries. Deleting a missing id is
// not an error.
func (s *Store) Delete(id string) error {
	if _, err := s.db.Exec("DELETE FROM records WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var r models.Record
	var tasks, imageURLs, status, createdAt, lastModified string

	err := row.Scan(
		&r.ID, &r.ProjectTitle, &r.ContractID, &r.SiteLocation, &r.Date, &r.Title,
		&r.Weather.Temperature, &r.Weather.Sky, &r.Weather.Precipitation, &r.Weather.Wind,
		&r.WorkingHours.StartTime, &r.WorkingHours.EndTime, &r.Progress, &r.Safety,
		&r.Materials, &r.Equipment, &r.Labor, &r.Issues, &r.NextSteps,
		&tasks, &r.Notes, &imageURLs, &r.Signature, &status,
		&createdAt, &lastModified, &r.CreatedBy,
	)
	if err != nil {
		return models.Record{}, err
	}

	r.Status = models.Status(status)
	if err := json.Unmarshal([]byte(tasks), &r.Tasks); err != nil {
		return models.Record{}, fmt.Errorf("failed to decode tasks for record %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(imageURLs), &r.ImageURLs); err != nil {
		return models.Record{}, fmt.Errorf("failed to decode image urls for record %s: %w", r.ID, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		r.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, lastModified); err == nil {
		r.LastModified = t
	}
	return r, nil
}

func (s *Store) queryRecords(query string, args ...any) ([]models.Record, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
