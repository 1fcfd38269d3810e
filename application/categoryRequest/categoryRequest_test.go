package categoryRequest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/histafrica/sharedkernel/application/dto"
	"github.com/histafrica/sharedkernel/application/seedwork"
	"github.com/histafrica/sharedkernel/domain/category"
	"github.com/histafrica/sharedkernel/domain/repository"
	dseedwork "github.com/histafrica/sharedkernel/domain/seedwork"
	"github.com/histafrica/sharedkernel/infrastructure"
	"github.com/histafrica/sharedkernel/infrastructure/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func missingId() string {
	return dseedwork.NewUniqueEntityId().String()
}

type CategoryTestSuite struct {
	suite.Suite
	ctx        context.Context
	clock      infrastructure.FixedClock
	categories *memory.CategoryRepository
}

func (s *CategoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = infrastructure.FixedClock{Now: now}
	s.categories = memory.NewCategoryRepository()
}

func (s *CategoryTestSuite) create(name string) *CategoryDto {
	cmd := CreateCategoryCommand{Name: name}
	out, err := cmd.Run(s.ctx, s.categories, s.clock)
	s.Require().NoError(err)
	return out
}

func (s *CategoryTestSuite) TestCreateCategory() {
	require := require.New(s.T())
	id := missingId()
	cmd := CreateCategoryCommand{Id: &id, Name: "Movie", Description: ptr("some"), IsActive: ptr(false)}

	out, err := cmd.Run(s.ctx, s.categories, s.clock)
	require.NoError(err)
	require.Equal(CategoryDto{Id: id, Name: "Movie", Description: ptr("some"), IsActive: false, CreatedAt: now}, *out)

	stored, err := s.categories.FindById(s.ctx, id)
	require.NoError(err)
	require.Equal("Movie", stored.Name)
}

func (s *CategoryTestSuite) TestCreateCategoryDefaultsToActive() {
	out := s.create("Movie")
	s.True(out.IsActive)
	s.Nil(out.Description)
	s.Equal(now, out.CreatedAt)
}

func (s *CategoryTestSuite) TestCreateCategoryWithInvalidId() {
	require := require.New(s.T())
	cmd := CreateCategoryCommand{Id: ptr("not-a-uuid"), Name: "Movie"}

	_, err := cmd.Run(s.ctx, s.categories, s.clock)
	var validationErrs seedwork.ValidationErrors
	require.ErrorAs(err, &validationErrs)
	require.Equal([]string{"ID must be a valid UUID"}, validationErrs.Errors["id"])
	require.Empty(s.categories.Items())
}

func (s *CategoryTestSuite) TestCreateCategoryWithInvalidName() {
	require := require.New(s.T())
	cmd := CreateCategoryCommand{Name: ""}

	_, err := cmd.Run(s.ctx, s.categories, s.clock)
	require.ErrorAs(err, &dseedwork.ErrEntityValidation)
	require.Empty(s.categories.Items())
}

func (s *CategoryTestSuite) TestGetCategoryById() {
	require := require.New(s.T())
	created := s.create("Movie")

	out, err := GetCategoryByIdQuery{Id: created.Id}.Run(s.ctx, s.categories)
	require.NoError(err)
	require.Equal(*created, *out)

	_, err = GetCategoryByIdQuery{Id: missingId()}.Run(s.ctx, s.categories)
	require.ErrorAs(err, &dseedwork.ErrNotFound)

	_, err = GetCategoryByIdQuery{Id: "1"}.Run(s.ctx, s.categories)
	require.ErrorAs(err, &seedwork.ErrValidation)
}

func (s *CategoryTestSuite) TestUpdateCategory() {
	require := require.New(s.T())
	created := s.create("Movie")

	cmd := UpdateCategoryCommand{Id: created.Id, Name: "Series", Description: ptr("episodes"), IsActive: ptr(false)}
	out, err := cmd.Run(s.ctx, s.categories)
	require.NoError(err)
	require.Equal(CategoryDto{Id: created.Id, Name: "Series", Description: ptr("episodes"), IsActive: false, CreatedAt: now}, *out)

	cmd = UpdateCategoryCommand{Id: created.Id, Name: "Series", IsActive: ptr(true)}
	out, err = cmd.Run(s.ctx, s.categories)
	require.NoError(err)
	require.True(out.IsActive)
	require.Nil(out.Description)
}

func (s *CategoryTestSuite) TestUpdateCategoryKeepsActiveWhenOmitted() {
	require := require.New(s.T())
	created := s.create("Movie")

	out, err := UpdateCategoryCommand{Id: created.Id, Name: "Series"}.Run(s.ctx, s.categories)
	require.NoError(err)
	require.True(out.IsActive)
}

func (s *CategoryTestSuite) TestUpdateMissingCategory() {
	require := require.New(s.T())
	s.create("Movie")
	before := s.categories.Items()

	_, err := UpdateCategoryCommand{Id: missingId(), Name: "Series"}.Run(s.ctx, s.categories)
	require.ErrorAs(err, &dseedwork.ErrNotFound)
	require.Equal(before, s.categories.Items())
}

func (s *CategoryTestSuite) TestUpdateCategoryWithInvalidName() {
	require := require.New(s.T())
	created := s.create("Movie")

	_, err := UpdateCategoryCommand{Id: created.Id, Name: ""}.Run(s.ctx, s.categories)
	require.ErrorAs(err, &dseedwork.ErrEntityValidation)

	stored, err := s.categories.FindById(s.ctx, created.Id)
	require.NoError(err)
	require.Equal("Movie", stored.Name)
}

func (s *CategoryTestSuite) TestDeleteCategory() {
	require := require.New(s.T())
	created := s.create("Movie")

	require.NoError(DeleteCategoryCommand{Id: created.Id}.Run(s.ctx, s.categories))
	require.Empty(s.categories.Items())

	err := DeleteCategoryCommand{Id: created.Id}.Run(s.ctx, s.categories)
	require.ErrorAs(err, &dseedwork.ErrNotFound)
}

func (s *CategoryTestSuite) TestListCategories() {
	require := require.New(s.T())
	for _, name := range []string{"b", "a", "c"} {
		s.create(name)
	}

	out, err := ListCategoriesQuery{Search: repository.SearchParamsInput{Page: "1", PerPage: "2", Sort: "name", SortDir: "desc"}}.Run(s.ctx, s.categories)
	require.NoError(err)
	require.Len(out.Items, 2)
	require.Equal("c", out.Items[0].Name)
	require.Equal("b", out.Items[1].Name)
	require.Equal(3, out.Total)
	require.Equal(1, out.CurrentPage)
	require.Equal(2, out.LastPage)
	require.Equal(2, out.PerPage)
	require.Equal(ptr("name"), out.Sort)
	require.Equal(ptr("desc"), out.SortDir)
	require.Nil(out.Filter)
}

func (s *CategoryTestSuite) TestListCategoriesNormalizesInput() {
	require := require.New(s.T())
	s.create("Movie")

	out, err := ListCategoriesQuery{Search: repository.SearchParamsInput{Page: "fake", PerPage: "-1", SortDir: "desc"}}.Run(s.ctx, s.categories)
	require.NoError(err)
	require.Len(out.Items, 1)
	require.Equal(1, out.CurrentPage)
	require.Equal(15, out.PerPage)
	require.Nil(out.Sort)
	require.Nil(out.SortDir)
}

func (s *CategoryTestSuite) TestListCategoriesFromSearchInput() {
	require := require.New(s.T())
	s.create("Movie")
	s.create("Anime")

	qry := ListCategoriesQueryFrom(dto.SearchInput{Filter: ptr("ANI")})
	out, err := qry.Run(s.ctx, s.categories)
	require.NoError(err)
	require.Len(out.Items, 1)
	require.Equal("Anime", out.Items[0].Name)
	require.Equal(ptr("ANI"), out.Filter)
}

func TestCategoryTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryTestSuite))
}

// mockCategories lets tests fail repository calls.
type mockCategories struct {
	mock.Mock
}

var _ category.Repository = (*mockCategories)(nil)

func (m *mockCategories) Insert(ctx context.Context, c category.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCategories) BulkInsert(ctx context.Context, categories []category.Category) error {
	return m.Called(ctx, categories).Error(0)
}

func (m *mockCategories) FindById(ctx context.Context, id string) (category.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(category.Category), args.Error(1)
}

func (m *mockCategories) FindAll(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]category.Category), args.Error(1)
}

func (m *mockCategories) Update(ctx context.Context, c category.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCategories) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCategories) SortableFields() []string {
	return m.Called().Get(0).([]string)
}

func (m *mockCategories) Search(ctx context.Context, params repository.SearchParams) (repository.SearchResult[category.Category], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(repository.SearchResult[category.Category]), args.Error(1)
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	errStore := errors.New("store unavailable")
	clock := infrastructure.FixedClock{Now: now}

	categories := new(mockCategories)
	categories.On("Insert", ctx, mock.AnythingOfType("category.Category")).Return(errStore)
	categories.On("FindById", ctx, mock.Anything).Return(category.Category{}, errStore)
	categories.On("Delete", ctx, mock.Anything).Return(errStore)
	categories.On("Search", ctx, repository.DefaultSearchParams()).Return(repository.SearchResult[category.Category]{}, errStore)

	_, err := CreateCategoryCommand{Name: "Movie"}.Run(ctx, categories, clock)
	require.ErrorIs(t, err, errStore)

	_, err = GetCategoryByIdQuery{Id: missingId()}.Run(ctx, categories)
	require.ErrorIs(t, err, errStore)

	_, err = UpdateCategoryCommand{Id: missingId(), Name: "Series"}.Run(ctx, categories)
	require.ErrorIs(t, err, errStore)

	err = DeleteCategoryCommand{Id: missingId()}.Run(ctx, categories)
	require.ErrorIs(t, err, errStore)

	_, err = ListCategoriesQuery{}.Run(ctx, categories)
	require.ErrorIs(t, err, errStore)

	categories.AssertExpectations(t)
	categories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestInvalidIdNeverReachesRepository(t *testing.T) {
	ctx := context.Background()
	categories := new(mockCategories)

	_, err := GetCategoryByIdQuery{Id: "fake id"}.Run(ctx, categories)
	require.ErrorAs(t, err, &seedwork.ErrValidation)

	err = DeleteCategoryCommand{Id: ""}.Run(ctx, categories)
	require.ErrorAs(t, err, &seedwork.ErrValidation)

	categories.AssertExpectations(t)
	categories.AssertNotCalled(t, "FindById", mock.Anything, mock.Anything)
	categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
