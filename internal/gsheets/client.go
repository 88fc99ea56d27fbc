package gsheets

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"coachhub/internal/models"
)

// Client клиент для работы с Google Sheets
type Client struct {
	sheets   *sheets.Service
	drive    *drive.Service
	folderID string
}

// NewClient создаёт клиент по service-account credentials
func NewClient(credentialsPath, folderID string) (*Client, error) {
	ctx := context.Background()

	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать credentials: %w", err)
	}

	config, err := google.JWTConfigFromJSON(data,
		sheets.SpreadsheetsScope,
		drive.DriveScope,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}

	client := config.Client(ctx)

	sheetsSrv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Sheets сервиса: %w", err)
	}

	driveSrv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания Drive сервиса: %w", err)
	}

	return &Client{
		sheets:   sheetsSrv,
		drive:    driveSrv,
		folderID: folderID,
	}, nil
}

// CreateAthleteSpreadsheet создаёт таблицу атлета с листами Плана, Журнала и 1ПМ
func (c *Client) CreateAthleteSpreadsheet(athlete *models.Athlete) (string, error) {
	ctx := context.Background()

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: athlete.Name,
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: "План", Index: 0}},
			{Properties: &sheets.SheetProperties{Title: "Журнал", Index: 1}},
			{Properties: &sheets.SheetProperties{Title: "1ПМ", Index: 2}},
		},
	}

	created, err := c.sheets.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("ошибка создания таблицы: %w", err)
	}

	spreadsheetID := created.SpreadsheetId

	if c.folderID != "" {
		_, err = c.drive.Files.Update(spreadsheetID, nil).
			AddParents(c.folderID).
			Context(ctx).
			Do()
		if err != nil {
			log.Printf("Предупреждение: не удалось переместить таблицу в папку: %v", err)
		}
	}

	if err := c.writeRows(spreadsheetID, "План", 1, [][]interface{}{planHeader()}); err != nil {
		log.Printf("Ошибка записи заголовков плана: %v", err)
	}
	c.formatHeaders(spreadsheetID, 0)

	journalHeader := []interface{}{
		"Дата", "Упражнение", "Подходы (план/факт)", "Повторы (план/факт)",
		"Вес (кг)", "RPE", "Заметки",
	}
	if err := c.writeRows(spreadsheetID, "Журнал", 1, [][]interface{}{journalHeader}); err != nil {
		log.Printf("Ошибка записи заголовков журнала: %v", err)
	}
	c.formatHeaders(spreadsheetID, 1)

	oneRMHeader := []interface{}{"Дата", "Упражнение", "1ПМ (кг)", "Метод"}
	if err := c.writeRows(spreadsheetID, "1ПМ", 1, [][]interface{}{oneRMHeader}); err != nil {
		log.Printf("Ошибка записи заголовков 1ПМ: %v", err)
	}
	c.formatHeaders(spreadsheetID, 2)

	log.Printf("Создана Google таблица для %s: %s", athlete.Name, spreadsheetID)
	return spreadsheetID, nil
}

func planHeader() []interface{} {
	return []interface{}{
		"Неделя", "Фаза", "День", "Упражнение", "Подходы", "Повторы",
		"% 1ПМ", "Вес (кг)", "Отдых (сек)", "RPE", "Заметки",
	}
}

// ExportPlan выгружает план тренировок на лист "План"
func (c *Client) ExportPlan(spreadsheetID string, plan *models.TrainingPlan) error {
	values := [][]interface{}{planHeader()}

	for _, week := range plan.Weeks {
		for _, workout := range week.Workouts {
			for _, ex := range workout.Exercises {
				row := []interface{}{
					week.WeekNum, week.Phase.NameRu(), workout.DayNum,
					ex.ExerciseName, ex.Sets, ex.Reps,
				}
				if ex.WeightPercent > 0 {
					row = append(row, ex.WeightPercent)
				} else {
					row = append(row, "")
				}
				if ex.WeightKg > 0 {
					row = append(row, ex.WeightKg)
				} else {
					row = append(row, "")
				}
				row = append(row, ex.RestSeconds)
				if ex.RPE > 0 {
					row = append(row, ex.RPE)
				} else {
					row = append(row, "")
				}
				row = append(row, ex.Notes)
				values = append(values, row)
			}
		}
	}

	if err := c.clearSheet(spreadsheetID, "План"); err != nil {
		return err
	}
	if err := c.writeRows(spreadsheetID, "План", 1, values); err != nil {
		return fmt.Errorf("ошибка выгрузки плана: %w", err)
	}

	log.Printf("План '%s' выгружен в Google Sheets: %s", plan.Name, spreadsheetID)
	return nil
}

// AppendSessionLog дописывает выполненную сессию в лист "Журнал"
func (c *Client) AppendSessionLog(spreadsheetID string, session *models.WorkoutSession) error {
	ctx := context.Background()

	var values [][]interface{}
	for i, entry := range session.Entries {
		row := []interface{}{
			"",
			entry.ExerciseName,
			fmt.Sprintf("%d/%d", entry.SetsPlanned, entry.SetsCompleted),
			fmt.Sprintf("%d/%d", entry.RepsPlanned, entry.RepsCompleted),
			entry.WeightKg,
			entry.RPEActual,
			entry.Notes,
		}
		if i == 0 {
			row[0] = session.SessionDate.Format("02.01.2006")
		}
		values = append(values, row)
	}
	if len(values) == 0 {
		return nil
	}

	valueRange := &sheets.ValueRange{Values: values}
	_, err := c.sheets.Spreadsheets.Values.Append(spreadsheetID, "Журнал!A2", valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("ошибка записи сессии: %w", err)
	}

	log.Printf("Сессия от %s добавлена в Google Sheets: %s",
		session.SessionDate.Format("02.01.2006"), spreadsheetID)
	return nil
}

// AppendOneRM дописывает запись 1ПМ в лист "1ПМ"
func (c *Client) AppendOneRM(spreadsheetID string, record *models.OneRM) error {
	ctx := context.Background()

	valueRange := &sheets.ValueRange{Values: [][]interface{}{{
		record.TestDate.Format("02.01.2006"),
		record.ExerciseName,
		record.OnePMKg,
		record.CalcMethod,
	}}}
	_, err := c.sheets.Spreadsheets.Values.Append(spreadsheetID, "1ПМ!A2", valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("ошибка записи 1ПМ: %w", err)
	}
	return nil
}

// clearSheet очищает лист целиком
func (c *Client) clearSheet(spreadsheetID, sheetName string) error {
	ctx := context.Background()
	_, err := c.sheets.Spreadsheets.Values.Clear(spreadsheetID, sheetName, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("ошибка очистки листа %s: %w", sheetName, err)
	}
	return nil
}

// writeRows записывает блок строк начиная с startRow
func (c *Client) writeRows(spreadsheetID, sheetName string, startRow int, values [][]interface{}) error {
	ctx := context.Background()
	writeRange := fmt.Sprintf("%s!A%d", sheetName, startRow)
	valueRange := &sheets.ValueRange{Values: values}
	_, err := c.sheets.Spreadsheets.Values.Update(spreadsheetID, writeRange, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

// formatHeaders делает первую строку листа жирной на цветном фоне
func (c *Client) formatHeaders(spreadsheetID string, sheetIndex int64) {
	ctx := context.Background()

	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetIndex,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   12,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: &sheets.Color{Red: 0.2, Green: 0.4, Blue: 0.8},
						TextFormat: &sheets.TextFormat{
							Bold:            true,
							ForegroundColor: &sheets.Color{Red: 1, Green: 1, Blue: 1},
						},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		},
	}

	_, err := c.sheets.Spreadsheets.BatchUpdate(spreadsheetID,
		&sheets.BatchUpdateSpreadsheetRequest{Requests: requests}).Context(ctx).Do()
	if err != nil {
		log.Printf("Ошибка форматирования: %v", err)
	}
}

// SpreadsheetURL возвращает URL таблицы
func SpreadsheetURL(spreadsheetID string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", spreadsheetID)
}
