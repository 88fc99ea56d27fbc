package export

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"coachhub/internal/models"
	"coachhub/internal/training"
)

// Структура колонок листа недели:
// A-День, B-Упражнение, C-Подходы, D-Повторы, E-%1ПМ, F-Вес (кг),
// G-Отдых (сек), H-Темп, I-RPE, J-Заметки
var planHeader = []string{
	"День", "Упражнение", "Подходы", "Повторы", "% 1ПМ",
	"Вес (кг)", "Отдых (сек)", "Темп", "RPE", "Заметки",
}

// WritePlanWorkbook выгружает план в xlsx: обзорный лист плюс лист на
// каждую неделю. Референсные 1ПМ (slug -> кг) используются для
// пересчёта weight_percent в абсолютный вес.
func WritePlanWorkbook(path string, plan *models.TrainingPlan, athleteName string, oneRM map[string]float64) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := createPlanStyles(f)
	if err != nil {
		return err
	}

	if err := writePlanOverview(f, styles, plan, athleteName); err != nil {
		return err
	}

	for _, week := range plan.Weeks {
		if err := writePlanWeekSheet(f, styles, week, oneRM); err != nil {
			return err
		}
	}

	// Удаляем дефолтный лист, обзор становится первым
	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("Обзор"); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("ошибка сохранения файла %s: %w", path, err)
	}

	log.Printf("План '%s' выгружен: %s (%d недель)", plan.Name, path, len(plan.Weeks))
	return nil
}

type planStyles struct {
	title  int
	label  int
	header int
	cell   int
	deload int
}

func createPlanStyles(f *excelize.File) (*planStyles, error) {
	styles := &planStyles{}
	var err error

	styles.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля title: %w", err)
	}

	styles.label, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 10, Color: "#6b7280"},
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
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1e3a5f"}, Pattern: 1},
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

	styles.deload, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#92400e"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#fef3c7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля deload: %w", err)
	}

	return styles, nil
}

func writePlanOverview(f *excelize.File, styles *planStyles, plan *models.TrainingPlan, athleteName string) error {
	sheet := "Обзор"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("ошибка создания листа обзора: %w", err)
	}

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 50)

	f.SetCellValue(sheet, "A1", plan.Name)
	f.SetCellStyle(sheet, "A1", "A1", styles.title)

	rows := [][2]interface{}{
		{"Атлет", athleteName},
		{"Цель", plan.Goal},
		{"Длительность", fmt.Sprintf("%d недель, %d тренировок в неделю", plan.TotalWeeks, plan.DaysPerWeek)},
		{"Старт", plan.StartDate.Format("02.01.2006")},
		{"Описание", plan.Description},
	}
	for i, r := range rows {
		row := i + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r[0])
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r[1])
	}

	// Фазы по неделям
	f.SetCellValue(sheet, "A9", "Периодизация")
	f.SetCellStyle(sheet, "A9", "A9", styles.label)
	for i, week := range plan.Weeks {
		row := 10 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("Неделя %d", week.WeekNum))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), week.Phase.NameRu())
	}

	return nil
}

func writePlanWeekSheet(f *excelize.File, styles *planStyles, week models.PlanWeek, oneRM map[string]float64) error {
	sheet := fmt.Sprintf("Неделя %d", week.WeekNum)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("ошибка создания листа %s: %w", sheet, err)
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 34)
	f.SetColWidth(sheet, "C", "I", 11)
	f.SetColWidth(sheet, "J", "J", 30)

	row := 1
	if week.Phase == models.PhaseDeload {
		f.SetCellValue(sheet, "A1", "Разгрузочная неделя: сниженные веса и объём")
		f.SetCellStyle(sheet, "A1", "J1", styles.deload)
		row = 2
	}

	for col, h := range planHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, styles.header)
	}
	row++

	for _, workout := range week.Workouts {
		for _, ex := range workout.Exercises {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), workout.DayNum)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ex.ExerciseName)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), ex.Sets)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), ex.Reps)

			if ex.WeightPercent > 0 {
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), ex.WeightPercent)
			}
			if kg := prescribedWeight(ex, oneRM); kg > 0 {
				f.SetCellValue(sheet, fmt.Sprintf("F%d", row), kg)
			}
			if ex.RestSeconds > 0 {
				f.SetCellValue(sheet, fmt.Sprintf("G%d", row), ex.RestSeconds)
			}
			if ex.Tempo != "" {
				f.SetCellValue(sheet, fmt.Sprintf("H%d", row), ex.Tempo)
			}
			if ex.RPE > 0 {
				f.SetCellValue(sheet, fmt.Sprintf("I%d", row), ex.RPE)
			}
			if ex.Notes != "" {
				f.SetCellValue(sheet, fmt.Sprintf("J%d", row), ex.Notes)
			}

			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("J%d", row), styles.cell)
			row++
		}
	}

	return nil
}

// prescribedWeight возвращает абсолютный вес упражнения: заданный в кг,
// либо рассчитанный из процента и референсного 1ПМ
func prescribedWeight(ex models.PlanExercise, oneRM map[string]float64) float64 {
	if ex.WeightKg > 0 {
		return ex.WeightKg
	}
	if ex.WeightPercent > 0 {
		if max, ok := oneRM[ex.ExerciseName]; ok && max > 0 {
			return training.WorkingWeight(max, ex.WeightPercent)
		}
	}
	return 0
}
