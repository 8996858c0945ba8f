package binding

import (
	"fmt"
	"path"
	"strings"

	"github.com/example/hexmaker/internal/core/effects"
	"github.com/example/hexmaker/internal/core/naming"
	"github.com/example/hexmaker/internal/core/property"
)

// Source directories of each artifact, relative to the module directory.
const (
	DirModel       = "Domain/Model"
	DirValueObject = "Domain/ValueObject"
	DirException   = "Domain/Exception"
	DirRepository  = "Domain/Repository"
	DirFactory     = "Domain/Factory"
	DirEvent       = "Domain/Event"
	DirCommand     = "Application/Command"
	DirQuery       = "Application/Query"
	DirUseCase     = "Application/UseCase"
	DirPersistence = "Infrastructure/Persistence/Doctrine"
	DirMapping     = "Infrastructure/Persistence/Doctrine/Mapping"
	DirMessaging   = "Infrastructure/Messaging/Handler"
	DirController  = "UI/Http/Web/Controller"
	DirForm        = "UI/Http/Web/Form"
	DirCli         = "UI/Cli"
)

// Binding pairs a template with its destination and the variables it is
// rendered with.
type Binding struct {
	TemplateID  string
	Destination string // relative to the project root, "/"-separated
	Vars        map[string]any
}

// FileEffect returns the binding as a file effect honoring the request's
// conflict options.
func (b Binding) FileEffect(opts Options) effects.FileEffect {
	return effects.FileEffect{
		TemplateID:   b.TemplateID,
		Destination:  b.Destination,
		Vars:         b.Vars,
		Overwrite:    opts.Force,
		SkipExisting: opts.SkipExisting,
	}
}

// Settings are the project-level inputs of the binder.
type Settings struct {
	SourceDir         string
	TestsDir          string
	Verbs             Verbs
	CommandBus        string
	QueryBus          string
	EventBus          string
	CommandMiddleware []string
	QueryMiddleware   []string
}

// DefaultSettings returns the conventional project layout.
func DefaultSettings() Settings {
	return Settings{
		SourceDir:         "src",
		TestsDir:          "tests",
		Verbs:             DefaultVerbs(),
		CommandBus:        "command.bus",
		QueryBus:          "query.bus",
		EventBus:          "event.bus",
		CommandMiddleware: []string{"validation", "doctrine_transaction"},
		QueryMiddleware:   []string{"validation"},
	}
}

// Binder derives bindings and configuration changes from requests.
type Binder struct {
	settings Settings
}

// NewBinder creates a Binder with the given settings.
func NewBinder(settings Settings) *Binder {
	return &Binder{settings: settings}
}

// bindCtx carries the per-request state shared by every binding of a request.
type bindCtx struct {
	req   Request
	names Names
	base  map[string]any
	out   []Binding
}

// Bind returns the ordered bindings for req. A CRUD request yields the
// bindings of all its expanded children.
func (b *Binder) Bind(req Request) ([]Binding, error) {
	if req.Kind == KindCrudBundle {
		var all []Binding
		for _, child := range b.Expand(req) {
			bindings, err := b.Bind(child)
			if err != nil {
				return nil, fmt.Errorf("failed to bind %s %s: %w", child.Kind, child.Name, err)
			}
			all = append(all, bindings...)
		}
		return all, nil
	}

	names := DeriveNames(req, b.settings.Verbs)
	c := &bindCtx{req: req, names: names, base: b.baseVars(req, names)}
	opts := req.Options

	switch req.Kind {
	case KindEntity:
		b.add(c, "entity/model", DirModel, names.Entity)
		b.addFile(c, "entity/mapping", path.Join(b.moduleDir(req.Path), DirMapping, names.Entity+".orm.xml"), DirMapping, names.Entity)
		if opts.WithIDValueObject {
			b.add(c, "entity/id_value_object", DirValueObject, names.IDClass)
		}
		if opts.WithRepository {
			b.add(c, "repository/interface", DirRepository, names.RepositoryInterface)
			b.add(c, "repository/adapter", DirPersistence, names.RepositoryAdapter)
		}
		if opts.WithTests {
			b.addTest(c, TestUnit, DirModel, names.Entity)
		}

	case KindValueObject:
		b.add(c, "value_object/value_object", DirValueObject, names.Name)
		if opts.WithTests {
			b.addTest(c, TestUnit, DirValueObject, names.Name)
		}

	case KindException:
		b.add(c, "exception/exception", DirException, exceptionClass(names.Name))

	case KindCommand:
		b.addCommand(c, names.Name)
		if opts.Factory {
			b.add(c, "command/factory", DirFactory, names.FactoryClass)
		}
		if opts.WithTests {
			b.addTest(c, TestUnit, DirCommand, names.Name+"CommandHandler")
		}

	case KindQuery:
		b.add(c, "query/query", DirQuery, names.Name+"Query")
		b.add(c, "query/handler", DirQuery, names.Name+"QueryHandler")
		b.add(c, "query/response", DirQuery, names.Name+"Response")
		if opts.WithTests {
			b.addTest(c, TestUnit, DirQuery, names.Name+"QueryHandler")
		}

	case KindRepository:
		b.add(c, "repository/interface", DirRepository, names.RepositoryInterface)
		b.add(c, "repository/adapter", DirPersistence, names.RepositoryAdapter)
		if opts.WithTests {
			b.addTest(c, TestIntegration, DirPersistence, names.RepositoryAdapter)
		}

	case KindController:
		b.add(c, "controller/controller", DirController, names.Name+"Controller")
		if opts.WithWorkflow {
			b.add(c, "form/type", DirForm, names.FormClass)
			b.addUseCase(c, names.Name)
			b.addCommand(c, names.Name)
			if opts.Factory {
				b.add(c, "command/factory", DirFactory, names.FactoryClass)
			}
		}
		if opts.WithTests {
			b.addTest(c, TestFunctional, DirController, names.Name+"Controller")
		}

	case KindForm:
		b.add(c, "form/type", DirForm, names.FormClass)

	case KindCliCommand:
		b.add(c, "cli/command", DirCli, names.Name+"Command")

	case KindUseCase:
		b.addUseCase(c, names.Name)
		if opts.WithTests {
			b.addTest(c, TestUnit, path.Join(DirUseCase, names.Name), names.Name+"UseCase")
		}

	case KindMessageHandler:
		b.add(c, "message/handler", DirMessaging, names.Name+"Handler")

	case KindDomainEvent:
		b.add(c, "event/domain_event", DirEvent, names.Name+"Event")
		if opts.WithSubscriber {
			b.add(c, "event/subscriber", subscriberDir(opts.Layer), names.Name+"Subscriber")
		}

	case KindEventSubscriber:
		b.add(c, "event/subscriber", subscriberDir(opts.Layer), names.Name+"Subscriber")

	case KindTest:
		if err := b.addTargetTest(c); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unknown artifact kind %q", req.Kind)
	}

	return c.out, nil
}

func (b *Binder) addCommand(c *bindCtx, name string) {
	b.add(c, "command/command", DirCommand, name+"Command")
	b.add(c, "command/handler", DirCommand, name+"CommandHandler")
}

func (b *Binder) addUseCase(c *bindCtx, name string) {
	dir := path.Join(DirUseCase, name)
	b.add(c, "use_case/use_case", dir, name+"UseCase")
	b.add(c, "use_case/input", dir, name+"Input")
}

// add binds a PHP class named class in dir.
func (b *Binder) add(c *bindCtx, templateID, dir, class string) {
	dest := path.Join(b.moduleDir(c.req.Path), dir, class+".php")
	b.addFile(c, templateID, dest, dir, class)
}

func (b *Binder) addFile(c *bindCtx, templateID, dest, dir, class string) {
	vars := cloneVars(c.base)
	vars["Namespace"] = namespace(c.req.Path, dir)
	vars["ClassName"] = class
	c.out = append(c.out, Binding{TemplateID: templateID, Destination: dest, Vars: vars})
}

// addTest binds a test for the class subject found in dir.
func (b *Binder) addTest(c *bindCtx, testType TestType, dir, subject string) {
	b.addTestFor(c, testType, dir, namespace(c.req.Path, dir), subject, subject+"Test")
}

func (b *Binder) addTestFor(c *bindCtx, testType TestType, dir, subjectNS, subject, class string) {
	segments := append([]string{"Tests", testType.Dir()}, c.req.Path.Segments()...)
	if dir != "" {
		segments = append(segments, strings.Split(dir, "/")...)
	}
	testNS := naming.NewPath("", c.req.Path.RootNamespace()).ToNamespace(strings.Join(segments, naming.NamespaceSeparator))

	vars := cloneVars(c.base)
	vars["Namespace"] = testNS
	vars["ClassName"] = class
	vars["TestType"] = string(testType)
	vars["SubjectNamespace"] = subjectNS
	vars["SubjectClass"] = subject
	vars["SubjectFQN"] = subjectNS + naming.NamespaceSeparator + subject

	dest := path.Join(b.settings.TestsDir, testType.Dir(), c.req.Path.ToPath(), dir, class+".php")
	c.out = append(c.out, Binding{TemplateID: "test/" + string(testType), Destination: dest, Vars: vars})
}

// addTargetTest binds a standalone test. The target is a class name relative
// to the path namespace ("Domain\Model\Order" or "Domain/Model/Order") or a
// fully qualified class name.
func (b *Binder) addTargetTest(c *bindCtx) error {
	opts := c.req.Options
	sep := naming.NamespaceSeparator
	subject := strings.TrimSuffix(c.names.Name, "Test")
	class := subject + "Test"

	target := strings.Trim(strings.ReplaceAll(opts.TestTarget, "/", sep), sep)
	if target == "" {
		b.addTestFor(c, opts.TestType, "", c.req.Path.ToNamespace(""), subject, class)
		return nil
	}

	parts := strings.Split(target, sep)
	for _, part := range parts {
		if !naming.IsIdentifier(part) {
			return fmt.Errorf("invalid test target %q", opts.TestTarget)
		}
	}
	subject = parts[len(parts)-1]
	targetNS := strings.Join(parts[:len(parts)-1], sep)

	moduleNS := c.req.Path.ToNamespace("")
	root := c.req.Path.RootNamespace()
	switch {
	case targetNS == moduleNS:
		b.addTestFor(c, opts.TestType, "", moduleNS, subject, class)
	case strings.HasPrefix(targetNS, moduleNS+sep):
		dir := strings.ReplaceAll(strings.TrimPrefix(targetNS, moduleNS+sep), sep, "/")
		b.addTestFor(c, opts.TestType, dir, targetNS, subject, class)
	case root != "" && (targetNS == root || strings.HasPrefix(targetNS, root+sep)):
		b.addTestFor(c, opts.TestType, "", targetNS, subject, class)
	default:
		dir := strings.ReplaceAll(targetNS, sep, "/")
		b.addTestFor(c, opts.TestType, dir, namespace(c.req.Path, dir), subject, class)
	}
	return nil
}

func (b *Binder) moduleDir(p naming.Path) string {
	return path.Join(b.settings.SourceDir, p.ToPath())
}

// namespace returns the namespace of dir inside the module at p.
func namespace(p naming.Path, dir string) string {
	return p.ToNamespace(strings.ReplaceAll(dir, "/", naming.NamespaceSeparator))
}

func subscriberDir(layer Layer) string {
	return layer.Dir() + "/EventSubscriber"
}

func exceptionClass(name string) string {
	if strings.HasSuffix(name, "Exception") {
		return name
	}
	return name + "Exception"
}

// baseVars builds the variables shared by every binding of a request, so that
// sibling artifacts always reference each other by the same names.
func (b *Binder) baseVars(req Request, n Names) map[string]any {
	p := req.Path
	props := make([]PropertyVar, len(req.Properties))
	for i, spec := range req.Properties {
		props[i] = newPropertyVar(spec)
	}

	return map[string]any{
		"RootNamespace":   p.RootNamespace(),
		"ModuleNamespace": p.ToNamespace(""),
		"ModulePath":      p.ToPath(),
		"ModuleAlias":     p.Alias(),

		"Name":          n.Name,
		"Entity":        n.Entity,
		"EntityVar":     naming.ToCamelCase(n.Entity),
		"EntityPlural":  naming.Pluralize(n.Entity),
		"TableName":     naming.ToSnakeCase(naming.Pluralize(n.Entity)),
		"Route":         n.Route,
		"RouteName":     naming.ToSnakeCase(p.Alias()) + "_" + naming.ToSnakeCase(n.Name),
		"CommandName":   cliCommandName(p, n.Name),
		"Pattern":       string(n.Pattern),
		"WithFactory":   req.Options.Factory,
		"WithIdVO":      req.Options.WithIDValueObject,
		"WithWorkflow":  req.Options.WithWorkflow,
		"IdType":        idType(req.Options.WithIDValueObject, n.IDClass, "int"),
		"IdScalar":      idType(req.Options.WithIDValueObject, "string", "int"),
		"ById":          queryByID(n.Name),
		"Layer":         string(req.Options.Layer),
		"Properties":    props,
		"HasProperties": len(props) > 0,
		"Bus":           b.settings.CommandBus,
		"QueryBus":      b.settings.QueryBus,
		"EventBus":      b.settings.EventBus,

		"IdClass":             n.IDClass,
		"FactoryClass":        n.FactoryClass,
		"FormClass":           n.FormClass,
		"RepositoryInterface": n.RepositoryInterface,
		"RepositoryAdapter":   n.RepositoryAdapter,
		"CommandClass":        n.Name + "Command",
		"HandlerClass":        n.Name + "CommandHandler",
		"QueryClass":          n.Name + "Query",
		"ResponseClass":       n.Name + "Response",
		"UseCaseClass":        n.Name + "UseCase",
		"InputClass":          n.Name + "Input",
		"EventClass":          n.Name + "Event",
		"ExceptionClass":      exceptionClass(n.Name),

		"ModelNamespace":       namespace(p, DirModel),
		"ValueObjectNamespace": namespace(p, DirValueObject),
		"ExceptionNamespace":   namespace(p, DirException),
		"RepositoryNamespace":  namespace(p, DirRepository),
		"FactoryNamespace":     namespace(p, DirFactory),
		"EventNamespace":       namespace(p, DirEvent),
		"CommandNamespace":     namespace(p, DirCommand),
		"QueryNamespace":       namespace(p, DirQuery),
		"UseCaseNamespace":     namespace(p, path.Join(DirUseCase, n.Name)),
		"AdapterNamespace":     namespace(p, DirPersistence),
		"MessagingNamespace":   namespace(p, DirMessaging),
		"ControllerNamespace":  namespace(p, DirController),
		"FormNamespace":        namespace(p, DirForm),
		"CliNamespace":         namespace(p, DirCli),
	}
}

// cliCommandName returns the console name, e.g. "app:sales-order:import-orders".
func cliCommandName(p naming.Path, name string) string {
	segments := p.Segments()
	for i, s := range segments {
		segments[i] = naming.ToKebabCase(s)
	}
	prefix := strings.ToLower(p.RootNamespace())
	if prefix == "" {
		prefix = "app"
	}
	return prefix + ":" + strings.Join(segments, "-") + ":" + naming.ToKebabCase(name)
}

func idType(withVO bool, vo, scalar string) string {
	if withVO {
		return vo
	}
	return scalar
}

// queryByID reports whether a query named name loads a single record by id.
func queryByID(name string) bool {
	for _, prefix := range []string{"Find", "Get", "Show"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func cloneVars(vars map[string]any) map[string]any {
	out := make(map[string]any, len(vars)+4)
	for k, v := range vars {
		out[k] = v
	}
	return out
}

// PropertyVar is the template view of a property.
type PropertyVar struct {
	Name         string
	Variable     string
	Column       string
	Kind         string
	Type         string
	DeclaredType string
	StorageType  string
	FormType     string
	Nullable     bool
	Unique       bool
	Length       int
	IsDate       bool
	IsNumeric    bool
	IsStringLike bool
	Validations  []property.Validation
}

func newPropertyVar(s property.Spec) PropertyVar {
	return PropertyVar{
		Name:         s.Name,
		Variable:     s.Variable(),
		Column:       s.Column(),
		Kind:         string(s.Kind),
		Type:         s.TargetType(),
		DeclaredType: s.DeclaredType(),
		StorageType:  s.StorageType(),
		FormType:     formType(s.Kind),
		Nullable:     s.Nullable,
		Unique:       s.Unique,
		Length:       s.Length(),
		IsDate:       s.Kind == property.KindDate || s.Kind == property.KindDateTime,
		IsNumeric:    s.Kind.IsNumeric(),
		IsStringLike: s.Kind.IsStringLike(),
		Validations:  s.Validations(),
	}
}

func formType(k property.Kind) string {
	switch k {
	case property.KindInt:
		return "IntegerType"
	case property.KindFloat:
		return "NumberType"
	case property.KindBool:
		return "CheckboxType"
	case property.KindDateTime:
		return "DateTimeType"
	case property.KindDate:
		return "DateType"
	case property.KindEmail:
		return "EmailType"
	case property.KindText:
		return "TextareaType"
	default:
		return "TextType"
	}
}
