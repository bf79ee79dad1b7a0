package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/channel-descriptions-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DescriptionRepositoryTestSuite defines the test suite for GormDescriptionRepository
type DescriptionRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo DescriptionRepository
}

// SetupTest runs before each test
func (suite *DescriptionRepositoryTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Description{})
	suite.Require().NoError(err)

	suite.repo = NewDescriptionRepository(suite.db)

	user := &models.User{ChannelID: "UCtestchannel00000000001"}
	suite.Require().NoError(suite.db.Create(user).Error)
}

// TearDownTest runs after each test
func (suite *DescriptionRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *DescriptionRepositoryTestSuite) createDescription(id string, createdAt time.Time, category *models.DescriptionCategory) *models.Description {
	description := &models.Description{
		ID:        id,
		Title:     "title " + id,
		Content:   "content " + id,
		Category:  category,
		ChannelID: "UCtestchannel00000000001",
		CreatedAt: createdAt,
	}
	suite.Require().NoError(suite.db.Create(description).Error)
	return description
}

// TestListByChannel_OrdersByCreatedAtThenID verifies the composite
// descending order, including the id tie-break for rows sharing a
// created_at value.
func (suite *DescriptionRepositoryTestSuite) TestListByChannel_OrdersByCreatedAtThenID() {
	shared := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	older := shared.Add(-time.Hour)

	suite.createDescription("bbbbbbbb-0000-4000-8000-000000000001", shared, nil)
	suite.createDescription("aaaaaaaa-0000-4000-8000-000000000001", shared, nil)
	suite.createDescription("cccccccc-0000-4000-8000-000000000001", older, nil)

	descriptions, err := suite.repo.ListByChannel(DescriptionFilter{
		ChannelID: "UCtestchannel00000000001",
		Limit:     10,
	})
	suite.Require().NoError(err)
	suite.Require().Len(descriptions, 3)

	suite.Equal("bbbbbbbb-0000-4000-8000-000000000001", descriptions[0].ID)
	suite.Equal("aaaaaaaa-0000-4000-8000-000000000001", descriptions[1].ID)
	suite.Equal("cccccccc-0000-4000-8000-000000000001", descriptions[2].ID)
}

// TestListByChannel_CursorBreaksTies verifies that a cursor pointing at
// a row inside a group of equal timestamps resumes without skipping or
// repeating the remaining rows of the group.
func (suite *DescriptionRepositoryTestSuite) TestListByChannel_CursorBreaksTies() {
	shared := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	suite.createDescription("aaaaaaaa-0000-4000-8000-000000000001", shared, nil)
	suite.createDescription("bbbbbbbb-0000-4000-8000-000000000001", shared, nil)
	suite.createDescription("cccccccc-0000-4000-8000-000000000001", shared, nil)

	descriptions, err := suite.repo.ListByChannel(DescriptionFilter{
		ChannelID:       "UCtestchannel00000000001",
		HasCursor:       true,
		CursorCreatedAt: shared,
		CursorID:        "bbbbbbbb-0000-4000-8000-000000000001",
		Limit:           10,
	})
	suite.Require().NoError(err)
	suite.Require().Len(descriptions, 1)
	suite.Equal("aaaaaaaa-0000-4000-8000-000000000001", descriptions[0].ID)
}

// TestListByChannel_CursorAnchorsToOlderRows verifies that rows newer
// than the cursor never appear in a resumed page.
func (suite *DescriptionRepositoryTestSuite) TestListByChannel_CursorAnchorsToOlderRows() {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	suite.createDescription("aaaaaaaa-0000-4000-8000-000000000001", base.Add(-2*time.Minute), nil)
	anchor := suite.createDescription("bbbbbbbb-0000-4000-8000-000000000001", base.Add(-time.Minute), nil)

	// Inserted after page one was served, with a newer timestamp.
	suite.createDescription("cccccccc-0000-4000-8000-000000000001", base, nil)

	descriptions, err := suite.repo.ListByChannel(DescriptionFilter{
		ChannelID:       "UCtestchannel00000000001",
		HasCursor:       true,
		CursorCreatedAt: anchor.CreatedAt,
		CursorID:        anchor.ID,
		Limit:           10,
	})
	suite.Require().NoError(err)
	suite.Require().Len(descriptions, 1)
	suite.Equal("aaaaaaaa-0000-4000-8000-000000000001", descriptions[0].ID)
}

// TestListByChannel_CategoryTriState verifies the three distinct filter
// semantics: unset, explicit null and explicit value.
func (suite *DescriptionRepositoryTestSuite) TestListByChannel_CategoryTriState() {
	gaming := models.CategoryGaming
	music := models.CategoryMusic
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	suite.createDescription("aaaaaaaa-0000-4000-8000-000000000001", base, &gaming)
	suite.createDescription("bbbbbbbb-0000-4000-8000-000000000001", base.Add(-time.Minute), &gaming)
	suite.createDescription("cccccccc-0000-4000-8000-000000000001", base.Add(-2*time.Minute), &music)
	suite.createDescription("dddddddd-0000-4000-8000-000000000001", base.Add(-3*time.Minute), nil)

	all, err := suite.repo.ListByChannel(DescriptionFilter{
		ChannelID: "UCtestchannel00000000001",
		Limit:     10,
	})
	suite.Require().NoError(err)
	suite.Len(all, 4)

	gamingOnly, err := suite.repo.ListByChannel(DescriptionFilter{
		ChannelID: "UCtestchannel00000000001",
		Category:  CategoryFilter{Set: true, Value: models.CategoryGaming},
		Limit:     10,
	})
	suite.Require().NoError(err)
	suite.Len(gamingOnly, 2)

	uncategorized, err := suite.repo.ListByChannel(DescriptionFilter{
		ChannelID: "UCtestchannel00000000001",
		Category:  CategoryFilter{Set: true, Null: true},
		Limit:     10,
	})
	suite.Require().NoError(err)
	suite.Require().Len(uncategorized, 1)
	suite.Equal("dddddddd-0000-4000-8000-000000000001", uncategorized[0].ID)
}

// TestListByChannel_ExcludesDeleted verifies that soft-deleted rows
// never show up in listings.
func (suite *DescriptionRepositoryTestSuite) TestListByChannel_ExcludesDeleted() {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	suite.createDescription("aaaaaaaa-0000-4000-8000-000000000001", base, nil)
	deleted := suite.createDescription("bbbbbbbb-0000-4000-8000-000000000001", base.Add(-time.Minute), nil)

	rows, err := suite.repo.SoftDelete(deleted.ID, time.Now())
	suite.Require().NoError(err)
	suite.Require().EqualValues(1, rows)

	descriptions, err := suite.repo.ListByChannel(DescriptionFilter{
		ChannelID: "UCtestchannel00000000001",
		Limit:     10,
	})
	suite.Require().NoError(err)
	suite.Require().Len(descriptions, 1)
	suite.Equal("aaaaaaaa-0000-4000-8000-000000000001", descriptions[0].ID)
}

// TestSoftDelete_SecondAttemptMatchesNothing verifies the optimistic
// guard: once deleted_at is set the conditional update matches zero
// rows and the original timestamp survives.
func (suite *DescriptionRepositoryTestSuite) TestSoftDelete_SecondAttemptMatchesNothing() {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	description := suite.createDescription("aaaaaaaa-0000-4000-8000-000000000001", base, nil)

	first := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	rows, err := suite.repo.SoftDelete(description.ID, first)
	suite.Require().NoError(err)
	suite.Require().EqualValues(1, rows)

	rows, err = suite.repo.SoftDelete(description.ID, first.Add(time.Hour))
	suite.Require().NoError(err)
	suite.EqualValues(0, rows)

	reloaded, err := suite.repo.FindByID(description.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(reloaded.DeletedAt)
	suite.True(reloaded.DeletedAt.Equal(first))
}

// TestFindByID_ReturnsDeletedRows verifies deleted rows stay reachable
// by id so callers can tell "already deleted" apart from "not found".
func (suite *DescriptionRepositoryTestSuite) TestFindByID_ReturnsDeletedRows() {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	description := suite.createDescription("aaaaaaaa-0000-4000-8000-000000000001", base, nil)

	_, err := suite.repo.SoftDelete(description.ID, time.Now())
	suite.Require().NoError(err)

	found, err := suite.repo.FindByID(description.ID)
	suite.Require().NoError(err)
	suite.NotNil(found.DeletedAt)
}

// TestFindContentByID verifies content lookup and that deleted rows
// report not found.
func (suite *DescriptionRepositoryTestSuite) TestFindContentByID() {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	description := suite.createDescription("aaaaaaaa-0000-4000-8000-000000000001", base, nil)

	content, err := suite.repo.FindContentByID(description.ID)
	suite.Require().NoError(err)
	suite.Equal(description.Content, content)

	_, err = suite.repo.SoftDelete(description.ID, time.Now())
	suite.Require().NoError(err)

	_, err = suite.repo.FindContentByID(description.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestDescriptionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(DescriptionRepositoryTestSuite))
}
