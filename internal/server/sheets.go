package server

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"coachhub/internal/gsheets"
)

// handleExportPlanSheets выгружает план в новую Google-таблицу атлета
// и возвращает ссылку на неё
func (s *Server) handleExportPlanSheets(w http.ResponseWriter, r *http.Request) {
	if s.sheets == nil {
		writeError(w, http.StatusServiceUnavailable, "экспорт в Google Sheets не настроен")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "некорректный id")
		return
	}

	plan, err := s.plans.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "план не найден")
			return
		}
		writeError(w, http.StatusInternalServerError, "ошибка чтения плана")
		return
	}

	athlete, err := s.athletes.GetByID(plan.AthleteID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "ошибка чтения атлета")
		return
	}

	spreadsheetID, err := s.sheets.CreateAthleteSpreadsheet(athlete)
	if err != nil {
		log.Printf("Ошибка создания таблицы: %v", err)
		writeError(w, http.StatusBadGateway, "ошибка создания таблицы")
		return
	}
	if err := s.sheets.ExportPlan(spreadsheetID, plan); err != nil {
		log.Printf("Ошибка экспорта плана в таблицу: %v", err)
		writeError(w, http.StatusBadGateway, "ошибка экспорта плана")
		return
	}
	s.fillAthleteSheets(spreadsheetID, plan.AthleteID)

	writeJSON(w, http.StatusCreated, map[string]string{
		"spreadsheet_id": spreadsheetID,
		"url":            gsheets.SpreadsheetURL(spreadsheetID),
	})
}

// fillAthleteSheets дозаполняет листы "Журнал" и "1ПМ" таблицы атлета:
// сессии за последние 90 дней и текущие записи 1ПМ. Ошибки здесь не валят
// экспорт - план уже выгружен, остальное дописывается по возможности.
func (s *Server) fillAthleteSheets(spreadsheetID string, athleteID int) {
	now := time.Now()
	sessions, err := s.athleteSessionsWithLogs(athleteID, now.AddDate(0, 0, -90), now.AddDate(0, 0, 1))
	if err != nil {
		log.Printf("Журнал не выгружен в таблицу: %v", err)
	} else {
		for i := range sessions {
			if err := s.sheets.AppendSessionLog(spreadsheetID, &sessions[i]); err != nil {
				log.Printf("Сессия %d не выгружена в таблицу: %v", sessions[i].ID, err)
			}
		}
	}

	current, err := s.oneRM.GetCurrent(athleteID)
	if err != nil {
		log.Printf("1ПМ не выгружены в таблицу: %v", err)
		return
	}
	slugs := make([]string, 0, len(current))
	for slug := range current {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		rec := current[slug]
		if err := s.sheets.AppendOneRM(spreadsheetID, &rec); err != nil {
			log.Printf("1ПМ %s не выгружен в таблицу: %v", slug, err)
		}
	}
}
