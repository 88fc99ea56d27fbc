package export

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"coachhub/internal/models"
)

// WriteAnalyticsWorkbook выгружает дашборд атлета в xlsx:
// сводка, недельные итоги, объём по группам мышц, прогресс 1ПМ.
func WriteAnalyticsWorkbook(path string, a *models.AthleteAnalytics) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := createDashboardStyles(f)
	if err != nil {
		return err
	}

	if err := writeSummarySheet(f, styles, a); err != nil {
		return err
	}
	if err := writeVolumeSheet(f, styles, a.WeeklyVolume); err != nil {
		return err
	}
	if err := writeOneRMSheet(f, styles, a.OneRMProgress); err != nil {
		return err
	}

	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("Сводка"); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("ошибка сохранения файла %s: %w", path, err)
	}

	log.Printf("Дашборд атлета %s выгружен: %s", a.AthleteName, path)
	return nil
}

type dashboardStyles struct {
	title     int
	bigNumber int
	label     int
	header    int
	cell      int
}

func createDashboardStyles(f *excelize.File) (*dashboardStyles, error) {
	styles := &dashboardStyles{}
	var err error

	styles.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 18},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля title: %w", err)
	}

	styles.bigNumber, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 26, Color: "#16a34a"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля bigNumber: %w", err)
	}

	styles.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9, Color: "#6b7280"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля label: %w", err)
	}

	border := []excelize.Border{
		{Type: "left", Color: "#d1d5db", Style: 1},
		{Type: "right", Color: "#d1d5db", Style: 1},
		{Type: "top", Color: "#d1d5db", Style: 1},
		{Type: "bottom", Color: "#d1d5db", Style: 1},
	}

	styles.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Color: "#ffffff"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#16213e"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля header: %w", err)
	}

	styles.cell, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: border,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля cell: %w", err)
	}

	return styles, nil
}

func writeSummarySheet(f *excelize.File, styles *dashboardStyles, a *models.AthleteAnalytics) error {
	sheet := "Сводка"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("ошибка создания листа сводки: %w", err)
	}

	f.SetColWidth(sheet, "A", "H", 14)

	f.SetCellValue(sheet, "A1", a.AthleteName)
	f.SetCellStyle(sheet, "A1", "A1", styles.title)

	// Блок ключевых чисел
	numbers := []struct {
		col   string
		value interface{}
		label string
	}{
		{"A", a.TotalSessions, "тренировок"},
		{"C", fmt.Sprintf("%.0f", a.TotalTonnage), "кг тоннажа"},
		{"E", fmt.Sprintf("%.1f", a.AvgSessionsWeek), "трен/неделю"},
	}
	for _, n := range numbers {
		f.SetCellValue(sheet, n.col+"3", n.value)
		f.SetCellStyle(sheet, n.col+"3", n.col+"3", styles.bigNumber)
		f.SetCellValue(sheet, n.col+"4", n.label)
		f.SetCellStyle(sheet, n.col+"4", n.col+"4", styles.label)
	}

	// Таблица недель
	header := []string{"Неделя", "Начало", "План", "Выполнено", "Тоннаж", "Подходы", "Ср. RPE", "Выполнение %"}
	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 6)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, styles.header)
	}

	for i, w := range a.WeeklySummaries {
		row := 7 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), w.WeekNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), w.WeekStartDate.Format("02.01.2006"))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), w.SessionsPlanned)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), w.SessionsCompleted)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), w.TotalTonnage)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), w.TotalSets)
		if w.AvgRPE > 0 {
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), w.AvgRPE)
		}
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), w.CompliancePercent)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), styles.cell)
	}

	return nil
}

func writeVolumeSheet(f *excelize.File, styles *dashboardStyles, volume []models.WeeklyMuscleVolume) error {
	sheet := "Объём"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("ошибка создания листа объёма: %w", err)
	}

	f.SetColWidth(sheet, "A", "E", 16)

	header := []string{"Неделя", "Группа мышц", "Подходы", "Повторы", "Тоннаж"}
	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, styles.header)
	}

	row := 2
	for _, wv := range volume {
		for _, m := range wv.ByMuscle {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), wv.WeekNumber)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.MuscleGroup)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.TotalSets)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), m.TotalReps)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), m.TotalTonnage)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), styles.cell)
			row++
		}
	}

	return nil
}

func writeOneRMSheet(f *excelize.File, styles *dashboardStyles, progress []models.OneRMProgress) error {
	sheet := "1ПМ"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("ошибка создания листа 1ПМ: %w", err)
	}

	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "F", 14)

	header := []string{"Упражнение", "Дата", "1ПМ (кг)", "Старт", "Текущий", "Прирост"}
	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, styles.header)
	}

	row := 2
	for _, p := range progress {
		for i := range p.Values {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.ExerciseName)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Dates[i].Format("02.01.2006"))
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Values[i])
			if i == len(p.Values)-1 {
				f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.InitialPM)
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.CurrentPM)
				f.SetCellValue(sheet, fmt.Sprintf("F%d", row),
					fmt.Sprintf("+%.1f кг (%.1f%%)", p.GainKg, p.GainPercent))
			}
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), styles.cell)
			row++
		}
	}

	return nil
}
