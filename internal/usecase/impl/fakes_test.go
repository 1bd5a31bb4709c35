package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"membership/config"
	"membership/internal/domain/entity"
	domainerrors "membership/internal/domain/errors"
	"membership/internal/domain/repository"
	"membership/internal/domain/service"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{
		BcryptCost:        4,
		SessionTTL:        30 * time.Minute,
		IdentityCookieTTL: 365 * 24 * time.Hour,
		CookieDomain:      "shop.example.com",
	}

	return cfg
}

// --- In-memory repository fakes ---

type fakeContactRepo struct {
	emails map[int]*entity.EmailAddress
	phones map[int]*entity.PhoneNumber
	nextID int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{
		emails: make(map[int]*entity.EmailAddress),
		phones: make(map[int]*entity.PhoneNumber),
		nextID: 1,
	}
}

func (f *fakeContactRepo) FindEmailByAddress(_ context.Context, address string) (*entity.EmailAddress, error) {
	for _, e := range f.emails {
		if e.Address == address {
			copied := *e

			return &copied, nil
		}
	}

	return nil, repository.ErrEmailNotFound
}

func (f *fakeContactRepo) FindEmailByID(_ context.Context, id int) (*entity.EmailAddress, error) {
	e, ok := f.emails[id]
	if !ok {
		return nil, repository.ErrEmailNotFound
	}
	copied := *e

	return &copied, nil
}

func (f *fakeContactRepo) FindEmailByToken(_ context.Context, token uuid.UUID) (*entity.EmailAddress, error) {
	for _, e := range f.emails {
		if e.ConfirmToken == token {
			copied := *e

			return &copied, nil
		}
	}

	return nil, repository.ErrEmailNotFound
}

func (f *fakeContactRepo) CreateEmail(_ context.Context, email *entity.EmailAddress) error {
	for _, e := range f.emails {
		if e.Address == email.Address {
			return domainerrors.ErrConflict.WrapMessage("email address already exists")
		}
	}
	email.ID = f.nextID
	email.CreatedAt = time.Now()
	f.nextID++
	copied := *email
	f.emails[email.ID] = &copied

	return nil
}

func (f *fakeContactRepo) UpdateEmail(_ context.Context, email *entity.EmailAddress) error {
	if _, ok := f.emails[email.ID]; !ok {
		return repository.ErrEmailNotFound
	}
	copied := *email
	f.emails[email.ID] = &copied

	return nil
}

func (f *fakeContactRepo) CreatePhoneNumber(_ context.Context, phone *entity.PhoneNumber) error {
	phone.ID = f.nextID
	f.nextID++
	copied := *phone
	f.phones[phone.ID] = &copied

	return nil
}

func (f *fakeContactRepo) FindPhoneByID(_ context.Context, id int) (*entity.PhoneNumber, error) {
	p, ok := f.phones[id]
	if !ok {
		return nil, repository.ErrPhoneNotFound
	}
	copied := *p

	return &copied, nil
}

type fakeAddressRepo struct {
	addresses map[int]*entity.Address
	nextID    int
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[int]*entity.Address), nextID: 1}
}

func (f *fakeAddressRepo) CreateAddress(_ context.Context, address *entity.Address) error {
	address.ID = f.nextID
	f.nextID++
	copied := *address
	f.addresses[address.ID] = &copied

	return nil
}

func (f *fakeAddressRepo) FindAddressByID(_ context.Context, id int) (*entity.Address, error) {
	a, ok := f.addresses[id]
	if !ok {
		return nil, repository.ErrAddressNotFound
	}
	copied := *a

	return &copied, nil
}

func (f *fakeAddressRepo) FindAddressByToken(_ context.Context, token uuid.UUID) (*entity.Address, error) {
	for _, a := range f.addresses {
		if a.Token == token {
			copied := *a

			return &copied, nil
		}
	}

	return nil, repository.ErrAddressNotFound
}

func (f *fakeAddressRepo) FindAddressesByEmailID(_ context.Context, emailID int) ([]*entity.Address, error) {
	var out []*entity.Address
	for _, a := range f.addresses {
		if a.EmailID == emailID {
			copied := *a
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (f *fakeAddressRepo) UpdateAddress(_ context.Context, address *entity.Address) error {
	if _, ok := f.addresses[address.ID]; !ok {
		return repository.ErrAddressNotFound
	}
	copied := *address
	f.addresses[address.ID] = &copied

	return nil
}

type emailLink struct {
	emailID      int
	displayOrder int
}

type fakeUserRepo struct {
	users  map[int]*entity.SystemUser
	links  map[int][]emailLink
	emails *fakeContactRepo
	nextID int
}

func newFakeUserRepo(emails *fakeContactRepo) *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[int]*entity.SystemUser),
		links:  make(map[int][]emailLink),
		emails: emails,
		nextID: 1,
	}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int) (*entity.SystemUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return f.load(ctx, u)
}

func (f *fakeUserRepo) FindByProviderKey(ctx context.Context, key uuid.UUID) (*entity.SystemUser, error) {
	for _, u := range f.users {
		if u.ProviderKey == key {
			return f.load(ctx, u)
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByPrimaryEmailID(ctx context.Context, emailID int) (*entity.SystemUser, error) {
	for _, u := range f.users {
		if u.PrimaryEmailID == emailID {
			return f.load(ctx, u)
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.SystemUser) error {
	for _, u := range f.users {
		if u.PrimaryEmailID == user.PrimaryEmailID {
			return repository.ErrEmailClaimed
		}
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied

	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.SystemUser) error {
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	f.users[user.ID] = &copied

	return nil
}

func (f *fakeUserRepo) AddEmailAssociation(_ context.Context, userID, emailID, displayOrder int) error {
	f.links[userID] = append(f.links[userID], emailLink{emailID: emailID, displayOrder: displayOrder})

	return nil
}

func (f *fakeUserRepo) RemoveEmailAssociation(_ context.Context, userID, emailID int) error {
	links := f.links[userID]
	for i, l := range links {
		if l.emailID == emailID {
			f.links[userID] = append(links[:i], links[i+1:]...)

			return nil
		}
	}

	return repository.ErrEmailNotFound
}

func (f *fakeUserRepo) UpdateEmailOrder(_ context.Context, userID, emailID, displayOrder int) error {
	links := f.links[userID]
	for i, l := range links {
		if l.emailID == emailID {
			links[i].displayOrder = displayOrder

			return nil
		}
	}

	return repository.ErrEmailNotFound
}

func (f *fakeUserRepo) FindEmailsByUserID(ctx context.Context, userID int) ([]*entity.EmailAddress, error) {
	links := append([]emailLink(nil), f.links[userID]...)
	sort.Slice(links, func(i, j int) bool { return links[i].displayOrder < links[j].displayOrder })

	out := make([]*entity.EmailAddress, 0, len(links))
	for _, l := range links {
		email, err := f.emails.FindEmailByID(ctx, l.emailID)
		if err != nil {
			continue
		}
		email.DisplayOrder = l.displayOrder
		out = append(out, email)
	}

	return out, nil
}

func (f *fakeUserRepo) load(ctx context.Context, u *entity.SystemUser) (*entity.SystemUser, error) {
	copied := *u
	emails, err := f.FindEmailsByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	copied.EmailAddresses = emails

	return &copied, nil
}

type fakeCountryRepo struct {
	countries map[int]*entity.Country
}

func newFakeCountryRepo(countries ...*entity.Country) *fakeCountryRepo {
	repo := &fakeCountryRepo{countries: make(map[int]*entity.Country)}
	for _, c := range countries {
		repo.countries[c.ID] = c
	}

	return repo
}

func (f *fakeCountryRepo) FindByID(_ context.Context, id int) (*entity.Country, error) {
	c, ok := f.countries[id]
	if !ok {
		return nil, repository.ErrCountryNotFound
	}

	return c, nil
}

func (f *fakeCountryRepo) FindByName(_ context.Context, name string) (*entity.Country, error) {
	for _, c := range f.countries {
		if c.Name == name {
			return c, nil
		}
	}

	return nil, repository.ErrCountryNotFound
}

func (f *fakeCountryRepo) List(_ context.Context) ([]*entity.Country, error) {
	out := make([]*entity.Country, 0, len(f.countries))
	for _, c := range f.countries {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

type fakeWebAddressRepo struct {
	webAddresses map[int]*entity.WebAddress
	nextID       int
}

func newFakeWebAddressRepo() *fakeWebAddressRepo {
	return &fakeWebAddressRepo{webAddresses: make(map[int]*entity.WebAddress), nextID: 1}
}

func (f *fakeWebAddressRepo) CreateWebAddress(_ context.Context, webAddress *entity.WebAddress) error {
	for _, w := range f.webAddresses {
		if w.URL == webAddress.URL {
			return domainerrors.ErrConflict.WrapMessage("web address already exists")
		}
	}
	webAddress.ID = f.nextID
	f.nextID++
	copied := *webAddress
	f.webAddresses[webAddress.ID] = &copied

	return nil
}

func (f *fakeWebAddressRepo) FindWebAddressByID(_ context.Context, id int) (*entity.WebAddress, error) {
	w, ok := f.webAddresses[id]
	if !ok {
		return nil, repository.ErrWebAddressNotFound
	}
	copied := *w

	return &copied, nil
}

func (f *fakeWebAddressRepo) FindWebAddressByURL(_ context.Context, url string) (*entity.WebAddress, error) {
	for _, w := range f.webAddresses {
		if w.URL == url {
			copied := *w

			return &copied, nil
		}
	}

	return nil, repository.ErrWebAddressNotFound
}

func (f *fakeWebAddressRepo) UpdateWebAddress(_ context.Context, webAddress *entity.WebAddress) error {
	if _, ok := f.webAddresses[webAddress.ID]; !ok {
		return repository.ErrWebAddressNotFound
	}
	copied := *webAddress
	f.webAddresses[webAddress.ID] = &copied

	return nil
}

// --- Transaction fakes ---

type fakeRepoFactory struct {
	contactRepo    *fakeContactRepo
	addressRepo    *fakeAddressRepo
	userRepo       *fakeUserRepo
	countryRepo    *fakeCountryRepo
	webAddressRepo *fakeWebAddressRepo
}

func (f *fakeRepoFactory) ContactRepo() repository.ContactRepository       { return f.contactRepo }
func (f *fakeRepoFactory) AddressRepo() repository.AddressRepository       { return f.addressRepo }
func (f *fakeRepoFactory) UserRepo() repository.UserRepository             { return f.userRepo }
func (f *fakeRepoFactory) CountryRepo() repository.CountryRepository       { return f.countryRepo }
func (f *fakeRepoFactory) WebAddressRepo() repository.WebAddressRepository { return f.webAddressRepo }

type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f.factory)
}

// --- Identity provider fake ---

type fakeProvider struct {
	credentials   map[string]*service.Credential
	passwords     map[string]string
	roles         map[string]bool
	assignedRoles map[uuid.UUID][]string
	deletedKeys   []uuid.UUID

	createErr  error
	approveErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		credentials:   make(map[string]*service.Credential),
		passwords:     make(map[string]string),
		roles:         map[string]bool{"customer": true, "administrator": true},
		assignedRoles: make(map[uuid.UUID][]string),
	}
}

func (f *fakeProvider) CreateCredential(_ context.Context, username, password, email string) (*service.Credential, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, exists := f.credentials[username]; exists {
		return nil, service.NewProviderError(service.ProviderCodeDuplicateUsername, "username already registered")
	}
	if len(password) < 8 {
		return nil, service.NewProviderError(service.ProviderCodeInvalidPassword, "password is too short")
	}

	cred := &service.Credential{
		Key:       uuid.New(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
	}
	f.credentials[username] = cred
	f.passwords[username] = password

	return cred, nil
}

func (f *fakeProvider) ApproveCredential(_ context.Context, key uuid.UUID) error {
	if f.approveErr != nil {
		return f.approveErr
	}
	for _, cred := range f.credentials {
		if cred.Key == key {
			cred.Approved = true

			return nil
		}
	}

	return service.NewProviderError(service.ProviderCodeNotFound, "credential not found")
}

func (f *fakeProvider) ValidateCredential(_ context.Context, username, password string) (bool, error) {
	stored, ok := f.passwords[username]

	return ok && stored == password, nil
}

func (f *fakeProvider) GetCredentialByKey(_ context.Context, key uuid.UUID) (*service.Credential, error) {
	for _, cred := range f.credentials {
		if cred.Key == key {
			return cred, nil
		}
	}

	return nil, service.NewProviderError(service.ProviderCodeNotFound, "credential not found")
}

func (f *fakeProvider) GetCredentialByUsername(_ context.Context, username string) (*service.Credential, error) {
	cred, ok := f.credentials[username]
	if !ok {
		return nil, service.NewProviderError(service.ProviderCodeNotFound, "credential not found")
	}

	return cred, nil
}

func (f *fakeProvider) ResetPassword(_ context.Context, key uuid.UUID) (string, error) {
	for _, cred := range f.credentials {
		if cred.Key == key {
			secret := "reset-" + key.String()[:8]
			f.passwords[cred.Username] = secret
			cred.MustChangePassword = true

			return secret, nil
		}
	}

	return "", service.NewProviderError(service.ProviderCodeNotFound, "credential not found")
}

func (f *fakeProvider) ChangePassword(_ context.Context, username, oldPassword, newPassword string) (bool, error) {
	stored, ok := f.passwords[username]
	if !ok {
		return false, service.NewProviderError(service.ProviderCodeNotFound, "credential not found")
	}
	if stored != oldPassword {
		return false, nil
	}
	if len(newPassword) < 8 {
		return false, service.NewProviderError(service.ProviderCodeInvalidPassword, "password is too short")
	}
	f.passwords[username] = newPassword
	f.credentials[username].MustChangePassword = false

	return true, nil
}

func (f *fakeProvider) DeleteCredential(_ context.Context, key uuid.UUID) error {
	f.deletedKeys = append(f.deletedKeys, key)
	for username, cred := range f.credentials {
		if cred.Key == key {
			delete(f.credentials, username)
			delete(f.passwords, username)

			return nil
		}
	}

	return nil
}

func (f *fakeProvider) RoleExists(_ context.Context, name string) (bool, error) {
	return f.roles[name], nil
}

func (f *fakeProvider) SetRole(_ context.Context, key uuid.UUID, role string) error {
	for _, held := range f.assignedRoles[key] {
		if held == role {
			return nil
		}
	}
	f.assignedRoles[key] = append(f.assignedRoles[key], role)

	return nil
}

// --- Session and token fakes ---

type fakeSessionStore struct {
	sessions map[string]*service.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*service.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, session *service.Session) error {
	f.sessions[session.ID] = session

	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, sessionID string) (*service.Session, error) {
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, service.ErrSessionNotFound
	}

	return s, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)

	return nil
}

type fakeTokenService struct {
	ttl time.Duration
}

func (f *fakeTokenService) GenerateSessionToken(userID int, providerKey uuid.UUID) (string, error) {
	return "token-" + providerKey.String(), nil
}

func (f *fakeTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	return &service.Claims{}, nil
}

func (f *fakeTokenService) GetSessionDuration() time.Duration {
	if f.ttl > 0 {
		return f.ttl
	}

	return 30 * time.Minute
}
