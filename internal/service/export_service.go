package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/repository"
	apperrors "github.com/aleksacoach93b/wellness-monitor-sub000/internal/pkg/errors"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/service/bodymap"
)

// ExportTable — прямоугольная таблица ответов опроса с фиксированным набором колонок
type ExportTable struct {
	Headers []string
	Rows    [][]string
}

// columnKind различает виды колонок экспорта
type columnKind int

const (
	columnIdentity columnKind = iota
	columnQuestion
	columnArea
)

// exportColumn — одна колонка итоговой таблицы
type exportColumn struct {
	header     string
	kind       columnKind
	questionID string
	areaID     string
}

// ExportService строит плоскую таблицу ответов опроса для CSV/BI-потребителей
type ExportService struct {
	surveyRepo   repository.SurveyRepository
	responseRepo repository.ResponseRepository
	playerRepo   repository.PlayerRepository
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
	loc          *time.Location
}

// NewExportService создает новый сервис экспорта
func NewExportService(
	surveyRepo repository.SurveyRepository,
	responseRepo repository.ResponseRepository,
	playerRepo repository.PlayerRepository,
	cacheRepo repository.CacheRepository,
	cacheTTLSec int,
	loc *time.Location,
) *ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		playerRepo:   playerRepo,
		cacheRepo:    cacheRepo,
		cacheTTL:     time.Duration(cacheTTLSec) * time.Second,
		loc:          loc,
	}
}

// exportCacheKey возвращает ключ кеша CSV-экспорта опроса
func exportCacheKey(surveyID string) string {
	return "export:csv:" + surveyID
}

// BuildTable строит таблицу экспорта опроса.
//
// Набор и порядок колонок зависят только от списка вопросов опроса, не от
// данных: схема одного опроса стабильна между запусками, разреженные данные
// превращаются в пустые ячейки. Ответы игроков, которых больше нет в
// ростере, молча исключаются.
func (s *ExportService) BuildTable(surveyID string) (*ExportTable, error) {
	survey, err := s.surveyRepo.GetWithQuestions(surveyID)
	if err != nil {
		return nil, err
	}

	players, err := s.playerRepo.List(false)
	if err != nil {
		return nil, fmt.Errorf("failed to load player roster: %w", err)
	}
	playerByID := make(map[string]*entity.Player, len(players))
	for i := range players {
		playerByID[players[i].ID] = &players[i]
	}

	responses, err := s.responseRepo.GetBySurveyID(surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load responses: %w", err)
	}

	columns := buildColumns(survey)

	table := &ExportTable{
		Headers: make([]string, len(columns)),
		Rows:    make([][]string, 0, len(responses)),
	}
	for i, col := range columns {
		table.Headers[i] = col.header
	}

	for i := range responses {
		response := &responses[i]
		if response.PlayerID == nil {
			continue
		}
		player, ok := playerByID[*response.PlayerID]
		if !ok {
			continue
		}
		table.Rows = append(table.Rows, s.buildRow(survey, player, response, columns))
	}

	return table, nil
}

// buildColumns вычисляет фиксированный набор колонок опроса.
//
// Вопрос с body map получает собственную текстовую колонку перед блоком
// областей: в нее попадают неразборчивые legacy-значения, которые не
// являются картой область→интенсивность.
func buildColumns(survey *entity.Survey) []exportColumn {
	columns := []exportColumn{
		{header: "Player Name", kind: columnIdentity},
		{header: "Player Email", kind: columnIdentity},
		{header: "Submitted At", kind: columnIdentity},
		{header: "Survey Title", kind: columnIdentity},
	}

	for _, question := range survey.Questions {
		columns = append(columns, exportColumn{
			header:     question.Text,
			kind:       columnQuestion,
			questionID: question.ID,
		})
		if question.IsBodyMap() {
			for _, area := range bodymap.All() {
				columns = append(columns, exportColumn{
					header:     question.Text + " - " + area.Label,
					kind:       columnArea,
					questionID: question.ID,
					areaID:     area.ID,
				})
			}
		}
	}

	return columns
}

// buildRow строит одну строку таблицы из ответа
func (s *ExportService) buildRow(survey *entity.Survey, player *entity.Player, response *entity.Response, columns []exportColumn) []string {
	answerByQuestion := make(map[string]string, len(response.Answers))
	for _, answer := range response.Answers {
		answerByQuestion[answer.QuestionID] = answer.Value
	}

	// Разбираем body map значения один раз на вопрос
	decoded := make(map[string]bodymap.Value)
	for _, question := range survey.Questions {
		if !question.IsBodyMap() {
			continue
		}
		if raw, ok := answerByQuestion[question.ID]; ok {
			decoded[question.ID] = bodymap.Decode(raw)
		}
	}

	row := make([]string, len(columns))
	for i, col := range columns {
		switch col.kind {
		case columnIdentity:
			switch col.header {
			case "Player Name":
				row[i] = player.FullName()
			case "Player Email":
				row[i] = player.Email
			case "Submitted At":
				row[i] = response.SubmittedAt.In(s.loc).Format("2006-01-02 15:04:05")
			case "Survey Title":
				row[i] = survey.Title
			}
		case columnQuestion:
			value, ok := decoded[col.questionID]
			if !ok {
				row[i] = answerByQuestion[col.questionID]
				continue
			}
			if !value.IsMap() {
				// Неразборчивое body map значение остается текстом как есть
				row[i] = value.Raw
				continue
			}
			row[i] = unknownAreasSummary(value.Areas)
		case columnArea:
			value, ok := decoded[col.questionID]
			if !ok || !value.IsMap() {
				continue
			}
			if intensity, hit := value.Areas[col.areaID]; hit {
				row[i] = strconv.Itoa(intensity)
			}
		}
	}
	return row
}

// unknownAreasSummary сворачивает области, отсутствующие в атласе, в текст
// вида "Label: N; Label: N" с детерминированным порядком. У областей вне
// атласа нет собственной колонки, но терять их нельзя.
func unknownAreasSummary(areas map[string]int) string {
	var ids []string
	for id := range areas {
		if !bodymap.Known(id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s: %d", bodymap.LabelFor(id), areas[id]))
	}
	return strings.Join(parts, "; ")
}

// CSV сериализует таблицу в CSV со стандартным экранированием.
// Выход детерминирован побайтно для неизменных входных данных.
func (t *ExportTable) CSV() string {
	var b strings.Builder
	writeCSVRow(&b, t.Headers)
	for _, row := range t.Rows {
		writeCSVRow(&b, row)
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSVCell(cell))
	}
	b.WriteString("\r\n")
}

// escapeCSVCell оборачивает ячейку в кавычки, если она содержит разделитель,
// кавычку или перевод строки; внутренние кавычки удваиваются
func escapeCSVCell(cell string) string {
	if !strings.ContainsAny(cell, ",\"\n\r") {
		return cell
	}
	return "\"" + strings.ReplaceAll(cell, "\"", "\"\"") + "\""
}

// ExportCSV возвращает CSV-экспорт опроса, при включенном кешировании —
// через Redis. Кеш сбрасывается при каждой новой отправке ответа.
func (s *ExportService) ExportCSV(surveyID string) (string, error) {
	key := exportCacheKey(surveyID)

	if s.cacheEnabled() {
		cached, err := s.cacheRepo.Get(key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[ExportService] Ошибка чтения кеша экспорта %s: %v", key, err)
		}
	}

	table, err := s.BuildTable(surveyID)
	if err != nil {
		return "", err
	}
	csv := table.CSV()

	if s.cacheEnabled() {
		if err := s.cacheRepo.Set(key, csv, s.cacheTTL); err != nil {
			log.Printf("[ExportService] Ошибка записи кеша экспорта %s: %v", key, err)
		}
	}

	return csv, nil
}

func (s *ExportService) cacheEnabled() bool {
	return s.cacheRepo != nil && s.cacheTTL > 0
}
