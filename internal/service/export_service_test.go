package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/domain/entity"
	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/service/bodymap"
)

// ============================================================================
// Тесты для ExportService
// ============================================================================

const (
	testSurveyID   = "survey-1"
	textQuestionID = "q-text"
	mapQuestionID  = "q-map"
)

// exportFixture собирает сервис экспорта на моках с одним текстовым вопросом
// и одним вопросом body map
func exportFixture(t *testing.T, responses []entity.Response) *ExportService {
	t.Helper()

	survey := &entity.Survey{
		ID:    testSurveyID,
		Title: "Daily Wellness",
		Questions: []entity.Question{
			{ID: textQuestionID, SurveyID: testSurveyID, Text: `How did you sleep?, "well"?`, Type: entity.QuestionTypeText, Order: 0},
			{ID: mapQuestionID, SurveyID: testSurveyID, Text: "Pain Map", Type: entity.QuestionTypeBodyMap, Order: 1},
		},
	}
	players := []entity.Player{
		{ID: "player-1", FirstName: "Ivan", LastName: "Petrov", Email: "ivan@example.com", IsActive: true},
	}

	mockSurveyRepo := new(MockSurveyRepository)
	mockResponseRepo := new(MockResponseRepository)
	mockPlayerRepo := new(MockPlayerRepository)

	mockSurveyRepo.On("GetWithQuestions", testSurveyID).Return(survey, nil)
	mockPlayerRepo.On("List", false).Return(players, nil)
	mockResponseRepo.On("GetBySurveyID", testSurveyID).Return(responses, nil)

	return NewExportService(mockSurveyRepo, mockResponseRepo, mockPlayerRepo, nil, 0, time.UTC)
}

func playerResponse(mapValue string) entity.Response {
	return entity.Response{
		ID:          "resp-1",
		SurveyID:    testSurveyID,
		PlayerID:    strPtr("player-1"),
		PlayerName:  "Ivan Petrov",
		SubmittedAt: time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC),
		Answers: []entity.Answer{
			{QuestionID: textQuestionID, Value: "Good"},
			{QuestionID: mapQuestionID, Value: mapValue},
		},
	}
}

func headerIndex(t *testing.T, headers []string, name string) int {
	t.Helper()
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	t.Fatalf("колонка %q не найдена", name)
	return -1
}

func TestExportService_BuildTable_ColumnLayout(t *testing.T) {
	svc := exportFixture(t, nil)

	table, err := svc.BuildTable(testSurveyID)
	require.NoError(t, err)

	// 4 идентификационных + текстовый вопрос + body map вопрос + 150 областей
	assert.Len(t, table.Headers, 4+1+1+150)
	assert.Equal(t, []string{"Player Name", "Player Email", "Submitted At", "Survey Title"}, table.Headers[:4])
	assert.Equal(t, `How did you sleep?, "well"?`, table.Headers[4])
	assert.Equal(t, "Pain Map", table.Headers[5])
	// Блок областей идет сразу за текстовой колонкой вопроса в порядке атласа
	assert.Equal(t, "Pain Map - Neck (Front)", table.Headers[6])
	assert.Equal(t, "Pain Map - Right Sole", table.Headers[len(table.Headers)-1])
	assert.Empty(t, table.Rows)
}

func TestExportService_SparseBodyMap(t *testing.T) {
	svc := exportFixture(t, []entity.Response{
		playerResponse(`{"path-23": 7, "left-heel": 2}`),
	})

	table, err := svc.BuildTable(testSurveyID)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]

	assert.Equal(t, "7", row[headerIndex(t, table.Headers, "Pain Map - Right Deltoideus")])
	assert.Equal(t, "2", row[headerIndex(t, table.Headers, "Pain Map - Left Heel")])

	// Все области из атласа валидны, текстовая колонка вопроса пуста
	assert.Equal(t, "", row[headerIndex(t, table.Headers, "Pain Map")])

	// Остальные 148 областей — пустые ячейки, не отсутствующие колонки
	empty := 0
	for i := 6; i < len(row); i++ {
		if row[i] == "" {
			empty++
		}
	}
	assert.Equal(t, 148, empty)
}

func TestExportService_MalformedBodyMapFallsBack(t *testing.T) {
	svc := exportFixture(t, []entity.Response{
		playerResponse("No"),
	})

	table, err := svc.BuildTable(testSurveyID)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]

	// Значение, не являющееся картой, попадает как есть в текстовую колонку вопроса
	assert.Equal(t, "No", row[headerIndex(t, table.Headers, "Pain Map")])
	for i := 6; i < len(row); i++ {
		assert.Equal(t, "", row[i], "колонка области %q должна быть пустой", table.Headers[i])
	}
}

func TestExportService_UnknownAreaFoldedIntoQuestionColumn(t *testing.T) {
	svc := exportFixture(t, []entity.Response{
		playerResponse(`{"path-23": 5, "alien-zone": 9}`),
	})

	table, err := svc.BuildTable(testSurveyID)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]

	assert.Equal(t, "5", row[headerIndex(t, table.Headers, "Pain Map - Right Deltoideus")])
	// Область вне атласа не теряется: сворачивается в текстовую колонку вопроса
	assert.Equal(t, "Alien Zone: 9", row[headerIndex(t, table.Headers, "Pain Map")])
}

func TestExportService_StaleAndAnonymousResponsesExcluded(t *testing.T) {
	stale := playerResponse(`{"path-23": 7}`)
	stale.ID = "resp-stale"
	stale.PlayerID = strPtr("deleted-player")

	anonymous := playerResponse("{}")
	anonymous.ID = "resp-anon"
	anonymous.PlayerID = nil

	svc := exportFixture(t, []entity.Response{
		stale,
		anonymous,
		playerResponse(`{"path-23": 7}`),
	})

	table, err := svc.BuildTable(testSurveyID)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Ivan Petrov", table.Rows[0][0])
	assert.Equal(t, "ivan@example.com", table.Rows[0][1])
}

func TestExportService_IdentityColumns(t *testing.T) {
	svc := exportFixture(t, []entity.Response{
		playerResponse(`{"path-23": 7}`),
	})

	table, err := svc.BuildTable(testSurveyID)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]

	assert.Equal(t, "Ivan Petrov", row[0])
	assert.Equal(t, "ivan@example.com", row[1])
	assert.Equal(t, "2025-06-10 09:30:00", row[2])
	assert.Equal(t, "Daily Wellness", row[3])
	assert.Equal(t, "Good", row[4])
}

func TestExportService_CSVByteIdentical(t *testing.T) {
	svc := exportFixture(t, []entity.Response{
		playerResponse(`{"path-23": 7, "left-heel": 2}`),
	})

	first, err := svc.ExportCSV(testSurveyID)
	require.NoError(t, err)
	second, err := svc.ExportCSV(testSurveyID)
	require.NoError(t, err)

	assert.Equal(t, first, second, "повторный экспорт без изменений данных должен быть побайтно идентичен")
}

func TestExportService_CSVEscaping(t *testing.T) {
	svc := exportFixture(t, nil)

	csv, err := svc.ExportCSV(testSurveyID)
	require.NoError(t, err)

	// Запятая и кавычки в тексте вопроса экранируются по стандартным правилам
	assert.Contains(t, csv, `"How did you sleep?, ""well""?"`)

	// Пустой набор ответов — валидный CSV из одной строки заголовков
	lines := strings.Split(strings.TrimRight(csv, "\r\n"), "\r\n")
	assert.Len(t, lines, 1)
}

func TestExportTable_CSVQuoting(t *testing.T) {
	table := &ExportTable{
		Headers: []string{"plain", "with,comma", `with"quote`},
		Rows: [][]string{
			{"a", "line\nbreak", ""},
		},
	}

	csv := table.CSV()

	assert.Equal(t, "plain,\"with,comma\",\"with\"\"quote\"\r\na,\"line\nbreak\",\r\n", csv)
}

func TestExportService_AtlasCoversBothViews(t *testing.T) {
	// Колонки строятся из полного атласа: обе проекции, 150 областей
	assert.Len(t, bodymap.All(), 150)
	assert.Len(t, bodymap.FrontAreas, 72)
	assert.Len(t, bodymap.BackAreas, 78)
}
