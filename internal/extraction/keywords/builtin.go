package keywords

import "requirement-extractor/pkg/registry"

const (
	CourseManagement   = "Course Management System"
	Ecommerce          = "E-commerce Platform"
	TaskManagement     = "Task Management System"
	LearningManagement = "Learning Management System"
)

// DefaultDocument returns a fresh copy of the built-in keyword table.
func DefaultDocument() *registry.Document {
	return &registry.Document{
		Version: "1.0.0",
		Fallback: registry.ArchetypeSpec{
			Name: "Generated App",
		},
		Archetypes: []registry.ArchetypeSpec{
			{
				Name:     CourseManagement,
				Keywords: []string{"course", "grade", "student", "teacher", "education", "school", "university"},
				Entities: []string{"Student", "Teacher", "Course"},
				Roles:    []string{"Teacher", "Student"},
				Features: []string{"Manage Courses", "Enroll Students"},
			},
			{
				Name:     Ecommerce,
				Keywords: []string{"shop", "store", "product", "buy", "sell", "order", "customer", "cart", "payment"},
				Entities: []string{"Product", "Order", "Customer"},
				Roles:    []string{"Customer", "Seller"},
				Features: []string{"Browse Products", "Manage Cart"},
			},
			{
				Name:     TaskManagement,
				Keywords: []string{"task", "project", "assignment", "todo", "workflow", "team", "collaborate"},
				Entities: []string{"Task", "Project", "User"},
				Roles:    []string{"Manager", "User"},
				Features: []string{"Create Tasks", "Set Deadlines"},
			},
			{
				Name:     "Blog Platform",
				Keywords: []string{"blog", "post", "article", "write", "publish", "content", "author"},
				Entities: []string{"Post", "Author", "Comment"},
				Roles:    []string{"Author", "Reader"},
				Features: []string{"Publish Posts", "Moderate Comments"},
			},
			{
				Name:     "Inventory Management",
				Keywords: []string{"inventory", "stock", "warehouse", "supply", "goods", "manage"},
				Entities: []string{"Product", "Category", "Supplier"},
				Roles:    []string{"Manager", "Employee"},
				Features: []string{"Manage Inventory", "Track Stock Levels"},
			},
			{
				Name:     "Customer Relationship Management",
				Keywords: []string{"customer", "client", "crm", "relationship", "contact", "lead"},
				Entities: []string{"Customer", "Contact", "Lead"},
				Roles:    []string{"Manager", "Employee"},
				Features: []string{"Manage Contacts", "Track Leads"},
			},
			{
				Name:     "Event Management System",
				Keywords: []string{"event", "booking", "reservation", "schedule", "calendar", "venue"},
				Entities: []string{"Event", "Room", "Booking"},
				Roles:    []string{"Organizer", "Attendee"},
				Features: []string{"Schedule Events", "Manage Bookings"},
			},
			{
				Name:     "Hospital Management System",
				Keywords: []string{"hospital", "patient", "doctor", "medical", "health", "clinic"},
				Entities: []string{"Patient", "Doctor", "Appointment"},
				Roles:    []string{"Doctor", "Patient"},
				Features: []string{"Manage Patient Records", "Schedule Appointments"},
			},
			{
				Name:     "Library Management System",
				Keywords: []string{"library", "book", "borrow", "return", "catalog", "member"},
				Entities: []string{"Book", "Member", "Author"},
				Roles:    []string{"Librarian", "Member"},
				Features: []string{"Manage Catalog", "Borrow Books"},
			},
			{
				Name:     "Restaurant Management System",
				Keywords: []string{"restaurant", "menu", "order", "food", "dining", "kitchen"},
				Entities: []string{"Menu", "Order", "Table"},
				Roles:    []string{"Manager", "Customer"},
				Features: []string{"Manage Menu", "Take Reservations"},
			},
			{
				Name:     "Real Estate Platform",
				Keywords: []string{"property", "real estate", "house", "rent", "buy", "listing"},
				Entities: []string{"Property", "Listing", "Agent"},
				Roles:    []string{"Agent", "Owner", "Tenant"},
				Features: []string{"List Properties", "Schedule Viewings"},
			},
			{
				Name:     "Social Media Platform",
				Keywords: []string{"social", "post", "follow", "like", "share", "friend", "feed"},
				Entities: []string{"User", "Post", "Comment"},
				Roles:    []string{"User", "Moderator"},
				Features: []string{"Share Posts", "Follow Users"},
			},
			{
				Name:     LearningManagement,
				Keywords: []string{"learning", "course", "lesson", "quiz", "exam", "training"},
				Entities: []string{"Course", "Lesson", "Quiz"},
				Roles:    []string{"Teacher", "Student"},
				Features: []string{"Manage Courses", "Take Quizzes"},
			},
			{
				Name:     "HR Management System",
				Keywords: []string{"employee", "hr", "payroll", "attendance", "leave", "recruitment"},
				Entities: []string{"Employee", "Department", "Payroll"},
				Roles:    []string{"Manager", "Employee"},
				Features: []string{"Manage Employees", "Track Attendance"},
			},
			{
				Name:     "Financial Management System",
				Keywords: []string{"finance", "budget", "expense", "income", "accounting", "transaction"},
				Entities: []string{"Transaction", "Budget", "Account"},
				Roles:    []string{"Admin", "Accountant"},
				Features: []string{"Track Expenses", "Generate Reports"},
			},
		},
		EntitySignals: []registry.Signal{
			{Name: "Student", Triggers: []string{"student", "pupil", "learner", "scholar"}},
			{Name: "Teacher", Triggers: []string{"teacher", "instructor", "professor", "educator", "faculty"}},
			{Name: "Course", Triggers: []string{"course", "class", "subject", "lesson", "module"}},
			{Name: "Grade", Triggers: []string{"grade", "score", "mark", "result", "assessment"}},
			{Name: "User", Triggers: []string{"user", "person", "people", "member", "individual"}},
			{Name: "Product", Triggers: []string{"product", "item", "goods", "merchandise"}},
			{Name: "Order", Triggers: []string{"order", "purchase", "transaction", "sale"}},
			{Name: "Customer", Triggers: []string{"customer", "client", "buyer", "consumer"}},
			{Name: "Task", Triggers: []string{"task", "assignment", "job", "activity", "work"}},
			{Name: "Project", Triggers: []string{"project", "initiative", "program"}},
			{Name: "Post", Triggers: []string{"post", "article", "blog", "content", "publication"}},
			{Name: "Comment", Triggers: []string{"comment", "review", "feedback", "response"}},
			{Name: "Admin", Triggers: []string{"admin", "administrator", "manager", "supervisor"}},
			{Name: "Employee", Triggers: []string{"employee", "staff", "worker", "personnel"}},
			{Name: "Department", Triggers: []string{"department", "division", "unit", "section"}},
			{Name: "Category", Triggers: []string{"category", "type", "group", "classification"}},
			{Name: "Report", Triggers: []string{"report", "analytics", "statistics", "summary"}},
			{Name: "Event", Triggers: []string{"event", "meeting", "appointment", "booking"}},
			{Name: "Patient", Triggers: []string{"patient", "client", "case"}},
			{Name: "Doctor", Triggers: []string{"doctor", "physician", "medical"}},
			{Name: "Book", Triggers: []string{"book", "publication", "volume"}},
			{Name: "Author", Triggers: []string{"author", "writer", "creator"}},
			{Name: "Invoice", Triggers: []string{"invoice", "bill", "receipt"}},
			{Name: "Payment", Triggers: []string{"payment", "transaction", "billing"}},
			{Name: "Room", Triggers: []string{"room", "space", "venue", "location"}},
			{Name: "Menu", Triggers: []string{"menu", "dish", "meal", "food"}},
			{Name: "Property", Triggers: []string{"property", "house", "apartment", "listing"}},
		},
		RoleSignals: []registry.Signal{
			{Name: "Admin", Triggers: []string{"admin", "administrator", "manager", "supervisor"}},
			{Name: "Teacher", Triggers: []string{"teacher", "instructor", "professor", "educator"}},
			{Name: "Student", Triggers: []string{"student", "pupil", "learner", "scholar"}},
			{Name: "Customer", Triggers: []string{"customer", "client", "buyer", "consumer"}},
			{Name: "Seller", Triggers: []string{"seller", "vendor", "merchant", "supplier"}},
			{Name: "Employee", Triggers: []string{"employee", "staff", "worker", "personnel"}},
			{Name: "Doctor", Triggers: []string{"doctor", "physician", "medical professional"}},
			{Name: "Patient", Triggers: []string{"patient", "client"}},
			{Name: "Author", Triggers: []string{"author", "writer", "blogger", "content creator"}},
			{Name: "Reader", Triggers: []string{"reader", "subscriber", "viewer"}},
			{Name: "Manager", Triggers: []string{"manager", "supervisor", "lead", "coordinator"}},
			{Name: "Owner", Triggers: []string{"owner", "proprietor", "landlord"}},
			{Name: "Tenant", Triggers: []string{"tenant", "renter", "occupant"}},
			{Name: "Moderator", Triggers: []string{"moderator", "moderates", "moderate"}},
			{Name: "User", Triggers: []string{"user", "member", "participant"}},
		},
		FeatureSignals: []registry.Signal{
			{Name: "Create Records", Triggers: []string{"add", "create", "register", "enroll", "insert", "new"}},
			{Name: "Edit Records", Triggers: []string{"edit", "update", "modify", "change", "revise"}},
			{Name: "Delete Records", Triggers: []string{"delete", "remove", "eliminate", "drop"}},
			{Name: "View Reports", Triggers: []string{"report", "analytics", "dashboard", "statistics", "summary"}},
			{Name: "Manage Users", Triggers: []string{"manage", "administer", "control", "oversee"}},
			{Name: "Upload Files", Triggers: []string{"upload", "file", "document", "attach", "import"}},
			{Name: "Download Data", Triggers: []string{"download", "export", "backup", "save"}},
			{Name: "Send Messages", Triggers: []string{"message", "chat", "communicate", "notify", "email"}},
			{Name: "Track Progress", Triggers: []string{"track", "progress", "monitor", "follow", "observe"}},
			{Name: "Generate Invoices", Triggers: []string{"invoice", "bill", "payment", "charge", "billing"}},
			{Name: "Search Data", Triggers: []string{"search", "find", "filter", "query", "lookup"}},
			{Name: "Schedule Events", Triggers: []string{"schedule", "calendar", "appointment", "booking"}},
			{Name: "Approve Requests", Triggers: []string{"approve", "authorize", "confirm", "validate"}},
			{Name: "Assign Tasks", Triggers: []string{"assign", "allocate", "delegate", "distribute"}},
			{Name: "Grade Submissions", Triggers: []string{"grade", "score", "evaluate", "assess", "mark"}},
			{Name: "Process Orders", Triggers: []string{"order", "purchase", "transaction", "process"}},
			{Name: "Manage Inventory", Triggers: []string{"inventory", "stock", "supply", "warehouse"}},
			{Name: "Generate Reports", Triggers: []string{"generate", "produce", "create report"}},
			{Name: "Backup Data", Triggers: []string{"backup", "archive", "store", "preserve"}},
			{Name: "Authentication", Triggers: []string{"login", "signin", "authenticate", "access"}},
			{Name: "Role Management", Triggers: []string{"role", "permission", "access control"}},
			{Name: "Notification System", Triggers: []string{"notification", "alert", "reminder", "notice"}},
		},
		Augmentations: []registry.Augmentation{
			{Archetypes: []string{CourseManagement, LearningManagement}, Feature: "Grade Submissions", Covers: "Grade"},
			{Archetypes: []string{CourseManagement, LearningManagement}, Feature: "Schedule Classes", Covers: "Schedule"},
			{Archetypes: []string{Ecommerce}, Feature: "Process Orders", Covers: "Order"},
			{Archetypes: []string{Ecommerce}, Feature: "Manage Inventory", Covers: "Inventory"},
			{Archetypes: []string{TaskManagement}, Feature: "Assign Tasks", Covers: "Assign"},
			{Archetypes: []string{TaskManagement}, Feature: "Track Progress", Covers: "Track"},
		},
	}
}
