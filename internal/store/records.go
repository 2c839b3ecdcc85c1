package store

import (
	"fmt"

	"kontrakt/internal/model"
)

// BatchInsertRecords inserts pipeline output in one transaction.
func (s *Store) BatchInsertRecords(importLogID int64, records []*model.ContractRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO contract_records (
			id, import_log_id, contract_id, contract_title, task_id, task_type,
			description, location, room_area, equipment_id, equipment_description,
			serial_number, status, workorder_code, planned_start, reported_by,
			reported_date, dedup_key, is_complete, source_sheet, source_row,
			source_file, imported_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			r.ID, importLogID, r.ContractID, r.ContractTitle, r.TaskID, r.TaskType,
			r.Description, r.Location, r.RoomArea, r.EquipmentID, r.EquipmentDescription,
			r.SerialNumber, r.Status, r.WorkorderCode, r.PlannedStart, r.ReportedBy,
			r.ReportedDate, r.DedupKey, r.IsComplete, r.Provenance.Sheet,
			r.Provenance.RowIndex, r.Provenance.SourceFileName, r.Provenance.ImportedAt,
		); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// ListRecords returns stored records, newest import first.
func (s *Store) ListRecords(limit, offset int) ([]*model.ContractRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
		SELECT id, contract_id, contract_title, task_id, task_type, description,
			location, room_area, equipment_id, equipment_description, serial_number,
			status, workorder_code, planned_start, reported_by, reported_date,
			dedup_key, is_complete, source_sheet, source_row, source_file, imported_at
		FROM contract_records
		ORDER BY imported_at DESC, source_row ASC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []*model.ContractRecord
	for rows.Next() {
		r := &model.ContractRecord{}
		if err := rows.Scan(
			&r.ID, &r.ContractID, &r.ContractTitle, &r.TaskID, &r.TaskType, &r.Description,
			&r.Location, &r.RoomArea, &r.EquipmentID, &r.EquipmentDescription, &r.SerialNumber,
			&r.Status, &r.WorkorderCode, &r.PlannedStart, &r.ReportedBy, &r.ReportedDate,
			&r.DedupKey, &r.IsComplete, &r.Provenance.Sheet, &r.Provenance.RowIndex,
			&r.Provenance.SourceFileName, &r.Provenance.ImportedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountRecords total stored records.
func (s *Store) CountRecords() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM contract_records`).Scan(&n)
	return n, err
}

// DeleteRecordsByImport removes the records of one import run.
func (s *Store) DeleteRecordsByImport(importLogID int64) error {
	_, err := s.db.Exec(`DELETE FROM contract_records WHERE import_log_id = ?`, importLogID)
	return err
}
