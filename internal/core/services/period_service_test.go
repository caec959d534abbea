package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizbooks/gl_engine/internal/apperrors"
	"github.com/bizbooks/gl_engine/internal/core/domain"
	portssvc "github.com/bizbooks/gl_engine/internal/core/ports/services"
	"github.com/bizbooks/gl_engine/internal/core/services"
	"github.com/bizbooks/gl_engine/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindFiscalPeriodByID(ctx context.Context, fiscalPeriodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, fiscalPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindFiscalPeriodByNumber(ctx context.Context, tenantID, companyID string, fiscalYear, periodNumber int) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, companyID, fiscalYear, periodNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) UpdateFiscalPeriodStatus(ctx context.Context, fiscalPeriodID string, expected, next domain.PeriodStatus, closedAt *time.Time, closedBy *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, fiscalPeriodID, expected, next, closedAt, closedBy, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockPeriodRepository) ClosePeriodWithLock(ctx context.Context, fiscalPeriodID string, closedAt time.Time, closedBy string, lock domain.PeriodLock) error {
	args := m.Called(ctx, fiscalPeriodID, closedAt, closedBy, lock)
	return args.Error(0)
}

func (m *MockPeriodRepository) ReopenPeriod(ctx context.Context, fiscalPeriodID string, expected domain.PeriodStatus, openedBy string, openedAt time.Time) error {
	args := m.Called(ctx, fiscalPeriodID, expected, openedBy, openedAt)
	return args.Error(0)
}

func (m *MockPeriodRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockPeriodRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPeriodRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPeriodRepository) SavePeriodLock(ctx context.Context, lock domain.PeriodLock) error {
	args := m.Called(ctx, lock)
	return args.Error(0)
}

func (m *MockPeriodRepository) ListActivePeriodLocks(ctx context.Context, fiscalPeriodID string) ([]domain.PeriodLock, error) {
	args := m.Called(ctx, fiscalPeriodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PeriodLock), args.Error(1)
}

func (m *MockPeriodRepository) SaveReversingEntry(ctx context.Context, entry domain.ReversingEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPeriodRepository) HasReversingEntry(ctx context.Context, originalJournalID string) (bool, error) {
	args := m.Called(ctx, originalJournalID)
	return args.Bool(0), args.Error(1)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) CountUnpostedJournals(ctx context.Context, tenantID, companyID string, from, to time.Time) (int, error) {
	args := m.Called(ctx, tenantID, companyID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) TrialBalance(ctx context.Context, tenantID, companyID string, asOf time.Time) (domain.TrialBalance, error) {
	args := m.Called(ctx, tenantID, companyID, asOf)
	return args.Get(0).(domain.TrialBalance), args.Error(1)
}

func (m *MockLedgerRepository) ListAccrualJournals(ctx context.Context, tenantID, companyID string, from, to time.Time) ([]domain.PostedJournal, error) {
	args := m.Called(ctx, tenantID, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedJournal), args.Error(1)
}

func (m *MockLedgerRepository) CountUnreconciledBankTransactions(ctx context.Context, tenantID, companyID string, asOf time.Time) (int, error) {
	args := m.Called(ctx, tenantID, companyID, asOf)
	return args.Int(0), args.Error(1)
}

// --- Test Suite ---
type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.PeriodSvcFacade
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewPeriodService(suite.mockPeriodRepo, suite.mockLedgerRepo, newTestSoDService())
}

func openPeriod() *domain.FiscalPeriod {
	return &domain.FiscalPeriod{
		FiscalPeriodID: "fp-2026-08",
		TenantID:       "tenant-1",
		CompanyID:      "company-1",
		FiscalYear:     2026,
		PeriodNumber:   8,
		StartDate:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:         domain.PeriodOpen,
	}
}

func closedPeriod() *domain.FiscalPeriod {
	p := openPeriod()
	p.Status = domain.PeriodClosed
	closedAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	closedBy := "user-9"
	p.ClosedAt = &closedAt
	p.ClosedBy = &closedBy
	return p
}

func closeInput() dto.ClosePeriodInput {
	return dto.ClosePeriodInput{
		TenantID:       "tenant-1",
		CompanyID:      "company-1",
		FiscalPeriodID: "fp-2026-08",
		ClosedBy:       "user-1",
		UserRole:       domain.RoleFinanceManager,
		CloseDate:      time.Now().Add(-time.Hour),
	}
}

func balancedTB() domain.TrialBalance {
	return domain.TrialBalance{
		TotalDebits:  decimal.RequireFromString("5000.00"),
		TotalCredits: decimal.RequireFromString("5000.00"),
	}
}

func (suite *PeriodServiceTestSuite) expectCleanChecks(period *domain.FiscalPeriod, unposted int) {
	suite.mockLedgerRepo.On("CountUnpostedJournals", mock.Anything, period.TenantID, period.CompanyID, period.StartDate, period.EndDate).
		Return(unposted, nil).Once()
	suite.mockLedgerRepo.On("TrialBalance", mock.Anything, period.TenantID, period.CompanyID, period.EndDate).
		Return(balancedTB(), nil).Once()
	suite.mockLedgerRepo.On("CountUnreconciledBankTransactions", mock.Anything, period.TenantID, period.CompanyID, period.EndDate).
		Return(0, nil).Once()
}

func (suite *PeriodServiceTestSuite) TestClose_Success() {
	period := openPeriod()
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()
	suite.expectCleanChecks(period, 0)
	suite.mockPeriodRepo.On("ClosePeriodWithLock", mock.Anything, "fp-2026-08", mock.Anything, "user-1",
		mock.MatchedBy(func(l domain.PeriodLock) bool {
			return l.FiscalPeriodID == "fp-2026-08" && l.LockType == domain.LockPosting && l.IsActive
		})).Return(nil).Once()

	result, err := suite.service.CloseFiscalPeriod(context.Background(), closeInput())

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Require().NotNil(result.Validation)
	suite.True(result.Validation.CanClose)
	suite.Require().NotNil(result.Period)
	suite.Equal(domain.PeriodClosed, result.Period.Status)
	suite.Require().NotNil(result.Period.ClosedBy)
	suite.Equal("user-1", *result.Period.ClosedBy)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClose_UnpostedJournalsBlock() {
	period := openPeriod()
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()
	suite.expectCleanChecks(period, 3)

	result, err := suite.service.CloseFiscalPeriod(context.Background(), closeInput())

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodePeriodCloseValidationFailed, result.Code)
	suite.Require().NotNil(result.Validation)
	suite.False(result.Validation.Checks.AllJournalsPosted)
	suite.Equal(3, result.Validation.UnpostedJournalCount)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "ClosePeriodWithLock",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClose_ForceCloseProceeds() {
	period := openPeriod()
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()
	suite.expectCleanChecks(period, 3)
	suite.mockPeriodRepo.On("ClosePeriodWithLock", mock.Anything, "fp-2026-08", mock.Anything, "user-1",
		mock.AnythingOfType("domain.PeriodLock")).Return(nil).Once()

	input := closeInput()
	input.ForceClose = true
	result, err := suite.service.CloseFiscalPeriod(context.Background(), input)

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Require().NotNil(result.Validation)
	suite.False(result.Validation.CanClose, "the report still carries the errors")
	suite.NotEmpty(result.Validation.Errors)
	suite.Equal(domain.PeriodClosed, result.Period.Status)
}

func (suite *PeriodServiceTestSuite) TestClose_UnbalancedTrialBalance() {
	period := openPeriod()
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()
	suite.mockLedgerRepo.On("CountUnpostedJournals", mock.Anything, period.TenantID, period.CompanyID, period.StartDate, period.EndDate).
		Return(0, nil).Once()
	suite.mockLedgerRepo.On("TrialBalance", mock.Anything, period.TenantID, period.CompanyID, period.EndDate).
		Return(domain.TrialBalance{
			TotalDebits:  decimal.RequireFromString("5000.00"),
			TotalCredits: decimal.RequireFromString("4998.50"),
		}, nil).Once()
	suite.mockLedgerRepo.On("CountUnreconciledBankTransactions", mock.Anything, period.TenantID, period.CompanyID, period.EndDate).
		Return(0, nil).Once()

	result, err := suite.service.CloseFiscalPeriod(context.Background(), closeInput())

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodePeriodCloseValidationFailed, result.Code)
	suite.False(result.Validation.Checks.TrialBalanceBalanced)
	suite.Equal("1.5", result.Validation.TrialBalanceDifference.String())
}

func (suite *PeriodServiceTestSuite) TestClose_UnreconciledOnlyWarns() {
	period := openPeriod()
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()
	suite.mockLedgerRepo.On("CountUnpostedJournals", mock.Anything, period.TenantID, period.CompanyID, period.StartDate, period.EndDate).
		Return(0, nil).Once()
	suite.mockLedgerRepo.On("TrialBalance", mock.Anything, period.TenantID, period.CompanyID, period.EndDate).
		Return(balancedTB(), nil).Once()
	suite.mockLedgerRepo.On("CountUnreconciledBankTransactions", mock.Anything, period.TenantID, period.CompanyID, period.EndDate).
		Return(2, nil).Once()
	suite.mockPeriodRepo.On("ClosePeriodWithLock", mock.Anything, "fp-2026-08", mock.Anything, "user-1",
		mock.AnythingOfType("domain.PeriodLock")).Return(nil).Once()

	result, err := suite.service.CloseFiscalPeriod(context.Background(), closeInput())

	suite.Require().NoError(err)
	suite.True(result.Success, "warnings never block the close")
	suite.NotEmpty(result.Validation.Warnings)
	suite.False(result.Validation.Checks.BankRecComplete)
}

func (suite *PeriodServiceTestSuite) TestClose_PeriodNotFound() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.CloseFiscalPeriod(context.Background(), closeInput())

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodePeriodNotFound, result.Code)
}

func (suite *PeriodServiceTestSuite) TestClose_WrongTenantReadsAsNotFound() {
	period := openPeriod()
	period.TenantID = "tenant-other"
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()

	result, err := suite.service.CloseFiscalPeriod(context.Background(), closeInput())

	suite.Require().NoError(err)
	suite.Equal(dto.CodePeriodNotFound, result.Code)
}

func (suite *PeriodServiceTestSuite) TestClose_AlreadyClosed() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(closedPeriod(), nil).Once()

	result, err := suite.service.CloseFiscalPeriod(context.Background(), closeInput())

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodePeriodAlreadyClosed, result.Code)
}

func (suite *PeriodServiceTestSuite) TestClose_LockedCannotCloseAgain() {
	period := closedPeriod()
	period.Status = domain.PeriodLocked
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()

	result, err := suite.service.CloseFiscalPeriod(context.Background(), closeInput())

	suite.Require().NoError(err)
	suite.Equal(dto.CodePeriodAlreadyClosed, result.Code)
}

func (suite *PeriodServiceTestSuite) TestClose_ClerkDenied() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(openPeriod(), nil).Once()

	input := closeInput()
	input.UserRole = domain.RoleClerk
	result, err := suite.service.CloseFiscalPeriod(context.Background(), input)

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodeSoDViolation, result.Code)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CountUnpostedJournals",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClose_FutureCloseDate() {
	input := closeInput()
	input.CloseDate = time.Now().Add(24 * time.Hour)

	result, err := suite.service.CloseFiscalPeriod(context.Background(), input)

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodeInvalidInput, result.Code)
}

func (suite *PeriodServiceTestSuite) TestClose_MissingFields() {
	input := closeInput()
	input.ClosedBy = ""

	result, err := suite.service.CloseFiscalPeriod(context.Background(), input)

	suite.Require().NoError(err)
	suite.Equal(dto.CodeInvalidInput, result.Code)
}

func (suite *PeriodServiceTestSuite) TestClose_ConcurrentCloseLosesRace() {
	period := openPeriod()
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()
	suite.expectCleanChecks(period, 0)
	suite.mockPeriodRepo.On("ClosePeriodWithLock", mock.Anything, "fp-2026-08", mock.Anything, "user-1",
		mock.AnythingOfType("domain.PeriodLock")).Return(apperrors.ErrConflict).Once()

	result, err := suite.service.CloseFiscalPeriod(context.Background(), closeInput())

	suite.Require().NoError(err, "losing the race is a business result, not a crash")
	suite.False(result.Success)
	suite.Equal(dto.CodePeriodAlreadyClosed, result.Code)
}

func (suite *PeriodServiceTestSuite) TestClose_TransitionWriteFailure() {
	period := openPeriod()
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()
	suite.expectCleanChecks(period, 0)
	suite.mockPeriodRepo.On("ClosePeriodWithLock", mock.Anything, "fp-2026-08", mock.Anything, "user-1",
		mock.AnythingOfType("domain.PeriodLock")).Return(assert.AnError).Once()

	result, err := suite.service.CloseFiscalPeriod(context.Background(), closeInput())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, assert.AnError)
	// The transition and its lock are one repository write, so a failure
	// cannot leave a closed period without its posting lock.
	suite.mockPeriodRepo.AssertNumberOfCalls(suite.T(), "ClosePeriodWithLock", 1)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriodLock", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestClose_GeneratesReversingEntries() {
	period := openPeriod()
	next := openPeriod()
	next.FiscalPeriodID = "fp-2026-09"
	next.PeriodNumber = 9
	next.StartDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()
	suite.expectCleanChecks(period, 0)
	suite.mockPeriodRepo.On("FindFiscalPeriodByNumber", mock.Anything, "tenant-1", "company-1", 2026, 9).
		Return(next, nil).Once()
	suite.mockLedgerRepo.On("ListAccrualJournals", mock.Anything, "tenant-1", "company-1", period.StartDate, period.EndDate).
		Return([]domain.PostedJournal{
			{JournalID: "jnl-1", JournalNumber: "JNL-1", Reference: "ACCRUAL-AUG"},
			{JournalID: "jnl-2", JournalNumber: "JNL-2", Reference: "ACCRUAL-AUG-2"},
		}, nil).Once()
	suite.mockPeriodRepo.On("HasReversingEntry", mock.Anything, "jnl-1").Return(false, nil).Once()
	suite.mockPeriodRepo.On("HasReversingEntry", mock.Anything, "jnl-2").Return(true, nil).Once()
	suite.mockPeriodRepo.On("SaveReversingEntry", mock.Anything, mock.MatchedBy(func(e domain.ReversingEntry) bool {
		return e.OriginalJournalID == "jnl-1" &&
			e.ReversalDate.Equal(next.StartDate) &&
			e.Status == domain.ReversingPending
	})).Return(nil).Once()
	suite.mockPeriodRepo.On("ClosePeriodWithLock", mock.Anything, "fp-2026-08", mock.Anything, "user-1",
		mock.AnythingOfType("domain.PeriodLock")).Return(nil).Once()

	input := closeInput()
	input.GenerateReversingEntries = true
	result, err := suite.service.CloseFiscalPeriod(context.Background(), input)

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal(1, result.ReversingEntriesCreated, "journals with an existing reversing entry are skipped")
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestClose_NoNextPeriodSkipsReversing() {
	period := openPeriod()
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()
	suite.expectCleanChecks(period, 0)
	suite.mockPeriodRepo.On("FindFiscalPeriodByNumber", mock.Anything, "tenant-1", "company-1", 2026, 9).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodRepo.On("ClosePeriodWithLock", mock.Anything, "fp-2026-08", mock.Anything, "user-1",
		mock.AnythingOfType("domain.PeriodLock")).Return(nil).Once()

	input := closeInput()
	input.GenerateReversingEntries = true
	result, err := suite.service.CloseFiscalPeriod(context.Background(), input)

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal(0, result.ReversingEntriesCreated)
	suite.NotEmpty(result.Validation.Warnings)
}

// --- OpenFiscalPeriod ---

func openInput() dto.OpenPeriodInput {
	return dto.OpenPeriodInput{
		TenantID:       "tenant-1",
		CompanyID:      "company-1",
		FiscalPeriodID: "fp-2026-08",
		OpenedBy:       "user-1",
		UserRole:       domain.RoleFinanceManager,
		OpenReason:     "Late supplier invoices",
	}
}

func (suite *PeriodServiceTestSuite) TestOpen_Success() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(closedPeriod(), nil).Once()
	suite.mockPeriodRepo.On("ReopenPeriod", mock.Anything, "fp-2026-08",
		domain.PeriodClosed, "user-1", mock.Anything).Return(nil).Once()

	result, err := suite.service.OpenFiscalPeriod(context.Background(), openInput())

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal(domain.PeriodOpen, result.Period.Status)
	suite.Nil(result.Period.ClosedAt)
	suite.Nil(result.Period.ClosedBy)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestOpen_LockedPeriodReopens() {
	period := closedPeriod()
	period.Status = domain.PeriodLocked
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()
	suite.mockPeriodRepo.On("ReopenPeriod", mock.Anything, "fp-2026-08",
		domain.PeriodLocked, "user-1", mock.Anything).Return(nil).Once()

	result, err := suite.service.OpenFiscalPeriod(context.Background(), openInput())

	suite.Require().NoError(err)
	suite.True(result.Success)
}

func (suite *PeriodServiceTestSuite) TestOpen_AlreadyOpen() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(openPeriod(), nil).Once()

	result, err := suite.service.OpenFiscalPeriod(context.Background(), openInput())

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodePeriodAlreadyOpen, result.Code)
}

func (suite *PeriodServiceTestSuite) TestOpen_ApprovalRequiredButNotFlagged() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(closedPeriod(), nil).Once()

	// A finance manager's reopen is not flagged for approval, so an input
	// demanding an approval workflow cannot be satisfied.
	input := openInput()
	input.ApprovalRequired = true
	result, err := suite.service.OpenFiscalPeriod(context.Background(), input)

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodeApprovalRequired, result.Code)
}

func (suite *PeriodServiceTestSuite) TestOpen_AccountantReopenRidesApproval() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(closedPeriod(), nil).Once()
	suite.mockPeriodRepo.On("ReopenPeriod", mock.Anything, "fp-2026-08",
		domain.PeriodClosed, "user-1", mock.Anything).Return(nil).Once()

	input := openInput()
	input.UserRole = domain.RoleAccountant
	input.ApprovalRequired = true
	result, err := suite.service.OpenFiscalPeriod(context.Background(), input)

	suite.Require().NoError(err)
	suite.True(result.Success)
}

func (suite *PeriodServiceTestSuite) TestOpen_ConcurrentReopenLosesRace() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(closedPeriod(), nil).Once()
	suite.mockPeriodRepo.On("ReopenPeriod", mock.Anything, "fp-2026-08",
		domain.PeriodClosed, "user-1", mock.Anything).Return(apperrors.ErrConflict).Once()

	result, err := suite.service.OpenFiscalPeriod(context.Background(), openInput())

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodePeriodAlreadyOpen, result.Code)
}

// --- CreatePeriodLock ---

func lockInput() dto.CreatePeriodLockInput {
	return dto.CreatePeriodLockInput{
		TenantID:       "tenant-1",
		CompanyID:      "company-1",
		FiscalPeriodID: "fp-2026-08",
		LockType:       domain.LockPosting,
		LockedBy:       "user-1",
		UserRole:       domain.RoleController,
		Reason:         "Audit freeze",
	}
}

func (suite *PeriodServiceTestSuite) TestCreateLock_Success() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(openPeriod(), nil).Once()
	suite.mockPeriodRepo.On("ListActivePeriodLocks", mock.Anything, "fp-2026-08").
		Return([]domain.PeriodLock{}, nil).Once()
	suite.mockPeriodRepo.On("SavePeriodLock", mock.Anything, mock.MatchedBy(func(l domain.PeriodLock) bool {
		return l.LockType == domain.LockPosting && l.IsActive && l.Reason == "Audit freeze"
	})).Return(nil).Once()

	result, err := suite.service.CreatePeriodLock(context.Background(), lockInput())

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Require().NotNil(result.Lock)
	suite.NotEmpty(result.Lock.PeriodLockID)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "UpdateFiscalPeriodStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreateLock_FullLockEscalatesClosedPeriod() {
	period := closedPeriod()
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").Return(period, nil).Once()
	suite.mockPeriodRepo.On("ListActivePeriodLocks", mock.Anything, "fp-2026-08").
		Return([]domain.PeriodLock{}, nil).Once()
	suite.mockPeriodRepo.On("SavePeriodLock", mock.Anything, mock.AnythingOfType("domain.PeriodLock")).
		Return(nil).Once()
	suite.mockPeriodRepo.On("UpdateFiscalPeriodStatus", mock.Anything, "fp-2026-08",
		domain.PeriodClosed, domain.PeriodLocked, period.ClosedAt, period.ClosedBy, "user-1", mock.Anything).
		Return(nil).Once()

	input := lockInput()
	input.LockType = domain.LockFull
	result, err := suite.service.CreatePeriodLock(context.Background(), input)

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestCreateLock_DuplicateActiveLock() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(openPeriod(), nil).Once()
	suite.mockPeriodRepo.On("ListActivePeriodLocks", mock.Anything, "fp-2026-08").
		Return([]domain.PeriodLock{
			{PeriodLockID: "lock-1", FiscalPeriodID: "fp-2026-08", LockType: domain.LockPosting, IsActive: true},
		}, nil).Once()

	result, err := suite.service.CreatePeriodLock(context.Background(), lockInput())

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodeBusinessRuleViolation, result.Code)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SavePeriodLock", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestCreateLock_ClerkDenied() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(openPeriod(), nil).Once()

	input := lockInput()
	input.UserRole = domain.RoleClerk
	result, err := suite.service.CreatePeriodLock(context.Background(), input)

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodeSoDViolation, result.Code)
}

func (suite *PeriodServiceTestSuite) TestCreateLock_PeriodNotFound() {
	suite.mockPeriodRepo.On("FindFiscalPeriodByID", mock.Anything, "fp-2026-08").
		Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.CreatePeriodLock(context.Background(), lockInput())

	suite.Require().NoError(err)
	suite.Equal(dto.CodePeriodNotFound, result.Code)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
