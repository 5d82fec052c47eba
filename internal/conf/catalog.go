package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
)

// CatalogConfig is the YAML shape of the content catalog
type CatalogConfig struct {
	Options  []OptionConfig `yaml:"options"`
	Footer   string         `yaml:"footer"`
	Handoff  HandoffConfig  `yaml:"handoff"`
	Persona  string         `yaml:"persona"`
	Greeting string         `yaml:"no_greeting"`
	Fallback string         `yaml:"fallback"`
}

// OptionConfig is one menu entry
type OptionConfig struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Reply    string   `yaml:"reply"`
	Triggers []string `yaml:"triggers"`
}

// HandoffConfig contains the human handoff texts
type HandoffConfig struct {
	Phrases     []string `yaml:"phrases"`
	Ack         string   `yaml:"ack"`
	AdminNotice string   `yaml:"admin_notice"`
}

// LoadCatalog loads the catalog from a YAML file.
// An empty path searches the usual locations and falls back to the compiled-in catalog.
// The returned string is the file that was loaded, or "" for the defaults.
func LoadCatalog(path string) (*domain.Catalog, string, error) {
	paths := []string{path}
	if path == "" {
		paths = []string{
			"configs/catalog.yaml",
			"/etc/frontdesk/catalog.yaml",
		}
		if execPath, err := os.Executable(); err == nil {
			paths = append(paths, filepath.Join(filepath.Dir(execPath), "configs", "catalog.yaml"))
		}
	}

	var data []byte
	var loadedPath string
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err == nil {
			data, loadedPath = b, p
			break
		}
		if path != "" {
			return nil, "", fmt.Errorf("read catalog: %w", err)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("read catalog %s: %w", p, err)
		}
	}

	if data == nil {
		catalog := DefaultCatalogConfig().ToCatalog()
		if err := catalog.Validate(); err != nil {
			return nil, "", err
		}
		return catalog, "", nil
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", loadedPath, err)
	}
	return catalog, loadedPath, nil
}

// ParseCatalog decodes and validates a YAML catalog, filling empty fields with defaults
func ParseCatalog(data []byte) (*domain.Catalog, error) {
	var config CatalogConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	config.fillDefaults()

	catalog := config.ToCatalog()
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// fillDefaults fills in default values for empty fields
func (c *CatalogConfig) fillDefaults() {
	defaults := DefaultCatalogConfig()

	if len(c.Options) == 0 {
		c.Options = defaults.Options
	}
	if c.Footer == "" {
		c.Footer = defaults.Footer
	}
	if len(c.Handoff.Phrases) == 0 {
		c.Handoff.Phrases = defaults.Handoff.Phrases
	}
	if c.Handoff.Ack == "" {
		c.Handoff.Ack = defaults.Handoff.Ack
	}
	if c.Handoff.AdminNotice == "" {
		c.Handoff.AdminNotice = defaults.Handoff.AdminNotice
	}
	if c.Persona == "" {
		c.Persona = defaults.Persona
	}
	if c.Greeting == "" {
		c.Greeting = defaults.Greeting
	}
	if c.Fallback == "" {
		c.Fallback = defaults.Fallback
	}
}

// ToCatalog converts to the domain catalog
func (c *CatalogConfig) ToCatalog() *domain.Catalog {
	options := make([]domain.Option, 0, len(c.Options))
	for _, o := range c.Options {
		options = append(options, domain.Option{
			ID:       o.ID,
			Label:    o.Label,
			Reply:    o.Reply,
			Triggers: append([]string(nil), o.Triggers...),
		})
	}
	return &domain.Catalog{
		Options:        options,
		Footer:         c.Footer,
		HandoffPhrases: append([]string(nil), c.Handoff.Phrases...),
		HandoffAck:     c.Handoff.Ack,
		AdminNotice:    c.Handoff.AdminNotice,
		Persona:        c.Persona,
		NoGreeting:     c.Greeting,
		Fallback:       c.Fallback,
	}
}

const menuFooter = "\n\n📋 ¿Sobre qué más te gustaría saber?\n" +
	"1️⃣ Horarios\n2️⃣ Precios\n3️⃣ Disciplinas\n4️⃣ Inscripción\n5️⃣ Ubicación"

// DefaultCatalogConfig returns the KUDO Bolivia front-desk catalog
func DefaultCatalogConfig() *CatalogConfig {
	return &CatalogConfig{
		Options: []OptionConfig{
			{
				ID:    "1",
				Label: "Horarios",
				Reply: "👉 *Horarios de clases en KUDO Bolivia:*\n• *Kudo Niños (6 a 13 años):*\n\t*Martes y Jueves* 8:45–10:00 y \n\t16:30–18:00 | \n\t*Sábados* 11:15–12:45\n" +
					"• *Kudo Jovenes y Adultos:*\n\t*Martes y Jueves* 8:45–10:00 y \n\t19:30–21:00 | \n\t*Sábado 10:00–11:15*\n" +
					"• *Brazilian Jiu Jitsu:*\n\t *Lunes, Miércoles y Viernes* \n\t17:00–18:30 y 19:30–21:00",
				Triggers: []string{"horarios", "hora", "a qué hora", "qué días", "qué horario"},
			},
			{
				ID:    "2",
				Label: "Precios",
				Reply: "👉 *Precios:*\nBs. 250 la mensualidad por persona y Bs. 150 por las 2 semanas de vacaciones de invierno. " +
					"Consulta por descuentos directamente con el equipo del dojo.",
				Triggers: []string{"precio", "cuánto cuesta", "cuánto cobran", "tarifa", "vale", "costo"},
			},
			{
				ID:    "3",
				Label: "Disciplinas",
				Reply: "👉 *Disciplinas que ofrecemos:*\n🥋 Kudo\n\tQue es KUDO: https://www.youtube.com/watch?v=NqcE1J7z2eE\n\n" +
					"🥋 Brazilian Jiu-Jitsu\n\tQue es BJJ: https://www.youtube.com/watch?v=tztK3dJksk0",
				Triggers: []string{"qué enseñan", "disciplinas", "qué clases hay", "qué actividades"},
			},
			{
				ID:    "4",
				Label: "Inscripción",
				Reply: "👉 *¿Cómo inscribirte?*\nAcercate al dojo para poder inscribirte. ¡Estamos disponibles para recibirte!\n\n" +
					"🥋¡Tienes una clase de prueba gratis en todas nuestras disciplinas!",
				Triggers: []string{"inscribir", "inscripción", "cómo me apunto", "cómo me inscribo", "registrarme"},
			},
			{
				ID:    "5",
				Label: "Ubicación",
				Reply: "📍 *Ubicación de KUDO Bolivia:*\nEdificio ex-Hotel Plaza, Av. 16 de Julio - Prado, La Paz, Bolivia,\n" +
					"ingreso gradas del colegio Don bosco\n\n📌Mapa: https://maps.app.goo.gl/CoJ7eoVns5tckgPv7",
				Triggers: []string{"dónde están", "dirección", "ubicación", "dónde queda", "cómo llegar"},
			},
		},
		Footer: menuFooter,
		Handoff: HandoffConfig{
			Phrases: []string{
				"hablar con alguien",
				"necesito ayuda",
				"quiero hablar con una persona",
				"me ayudan",
				"me pueden ayudar",
				"atención humana",
			},
			Ack:         "¡Claro! Alguien del equipo de KUDO Bolivia se pondrá en contacto contigo.",
			AdminNotice: "📩 Solicitud de atención humana del número: %s\nMensaje: %s",
		},
		Persona:  defaultPersona,
		Greeting: " No inicies con saludos.",
		Fallback: "En este momento no puedo responder tu consulta. Te invitamos a visitar el dojo o a elegir una opción del menú." + menuFooter,
	}
}

const defaultPersona = "Eres un asistente virtual del centro de artes marciales *KUDO Bolivia*, ubicado en el " +
	"edificio ex-Hotel Plaza, en la ciudad de La Paz, Bolivia. Tu objetivo es brindar " +
	"información clara, respetuosa y profesional a todas las personas que consultan por WhatsApp.\n\n" +
	"🏆 En *KUDO Bolivia* se imparten dos disciplinas principales: *Kudo* y *Jiu-Jitsu Brasileño (BJJ)*.\n\n" +
	"🥋 *¿Qué es Kudo?*\n" +
	"Kudo es un arte marcial japonés moderno y completo que combina golpes a contacto pleno, " +
	"lanzamientos, controles y técnicas de sumisión en el suelo. Se considera un *Budo* " +
	"contemporáneo con valores educativos, espirituales y de respeto, promoviendo la formación " +
	"del carácter, la superación personal y la cortesía (*Reigi*).\n\n" +
	"Fue creado por el maestro *Azuma Takashi* y se practica en más de 50 países. Cada cuatro " +
	"años se celebra un Campeonato Mundial, que reúne a los mejores representantes del mundo.\n\n" +
	"Su filosofía se basa en tres conceptos fundamentales:\n" +
	"• *Transitoriedad* (nada es permanente),\n" +
	"• *Interdependencia* (todo está conectado),\n" +
	"• *Mente abierta* (humildad, imparcialidad y aprendizaje continuo).\n\n" +
	"📌 *Sobre KUDO Bolivia:*\n" +
	"KUDO Bolivia fue oficialmente constituida en abril de 2021. Su director (*Branch Chief*) es " +
	"el Sensei *José Manuel Rioja Claure*, 2º DAN en Kudo. Desde su creación, el equipo boliviano " +
	"ha participado en eventos internacionales, incluyendo el Panamericano en Brasil y el " +
	"Campeonato Mundial en Japón en 2023.\n\n" +
	"📹 Videos recomendados:\n" +
	"• ¿Qué es Kudo?: https://www.youtube.com/watch?v=NqcE1J7z2eE&\n" +
	"• Highlights: https://www.youtube.com/watch?v=JtTWeISoAFA&\n" +
	"• Mundial 2023: https://www.youtube.com/watch?v=jfcne0M5qEU\n\n" +
	"🌐 Sitio oficial de la Federación Internacional de Kudo (KIF): https://ku-do.org/\n" +
	"📘 Facebook oficial KUDO Bolivia: https://www.facebook.com/profile.php?id=100032041972221\n" +
	"🗓️ Calendario de eventos KIF: https://ku-do.org/news/\n\n" +
	"🥋 *¿Qué es el Jiu-Jitsu Brasileño (BJJ)?*\n" +
	"El BJJ es un arte marcial especializado en el combate cuerpo a cuerpo en el suelo, " +
	"utilizando técnicas como llaves articulares, estrangulamientos y controles. Se basa en la " +
	"técnica y la estrategia más que en la fuerza, permitiendo neutralizar o someter al oponente " +
	"con eficiencia.\n\n" +
	"🎥 Video explicativo: https://www.youtube.com/watch?v=tztK3dJksk0\n\n" +
	"🧍‍♂️ *Edades y niveles:*\n" +
	"Ofrecemos clases para todas las edades, desde niños hasta adultos. Se aceptan niños desde los" +
	" 6 años o próximos a cumplirlos. No se necesita experiencia previa.\n\n" +
	"🕒 *Horarios generales de referencia:*\n" +
	"• Kudo Niños (6 a 13 años): martes y jueves 8:45–10:00 y 16:30–18:00 | sábados 11:15–12:45\n" +
	"• Kudo Jóvenes y Adultos: martes y jueves 8:45–10:00 y 19:30–21:00 | sábados 10:00–11:15\n" +
	"• Brazilian Jiu-Jitsu: lunes, miércoles y viernes 17:00–18:30 y 19:30–21:00\n\n" +
	"💰 *Precios:* Bs. 250 mensual por persona. También ofrecemos una opción de Bs. 150 por dos " +
	"semanas de vacaciones de invierno. Consulta por descuentos directamente con el equipo del dojo.\n\n" +
	"🆓 *Clase de prueba:*\n" +
	"Puedes asistir a una clase gratuita antes de tomar una decisión de inscripción.\n\n" +
	"🧥 *Indumentaria:*\n" +
	"Para las primeras clases se recomienda ropa deportiva cómoda. Para entrenamientos regulares " +
	"se utilizan implementos básicos como *gi* (kimono), guantes, protector facial y otros, según " +
	"la disciplina.\n\n" +
	"📝 *Inscripción:* Puedes inscribirte acercándote al dojo. ¡Estamos disponibles para recibirte!\n\n" +
	"📍 *Ubicación:* Edificio ex-Hotel Plaza, Av. 16 de Julio - Prado, La Paz, Bolivia. Ingreso " +
	"por las gradas del colegio Don Bosco. \n\n " +
	"📌 Puedes ver el mapa en Google Maps:  \n" +
	"https://maps.app.goo.gl/CoJ7eoVns5tckgPv7\n\n" +
	"📝 Si alguien pregunta por temas como horarios, precios, inscripción o ubicación, ofrece " +
	"primero este menú de opciones:\n" +
	"1️⃣ Horarios\n2️⃣ Precios\n3️⃣ Disciplinas\n4️⃣ Inscripción\n5️⃣ Ubicación\n\n" +
	"📌 Siempre responde en español neutro, con cortesía y como si formaras parte del equipo de " +
	"*KUDO Bolivia*. Si no conoces la respuesta exacta, invita amablemente a visitar el dojo para " +
	"obtener más información. Si el usuario escribe una lista de números como “1, 3, 4”, responde " +
	"a cada opción en orden. Cada número corresponde al menú que se muestra. No inventes ni combines" +
	" si no está especificado.\n" +
	"🔁 Cuando el usuario solicite la opción 3 (*Disciplinas*), sola o combinada con otras, debes " +
	"incluir también los enlaces de video explicativo de *Kudo* y *BJJ* en tu respuesta."
