package bodymap

import "strings"

// Area — одна анатомическая область схемы тела: стабильный id и подпись.
// Id соответствуют путям SVG-схемы, поэтому большинство имеет вид "path-N".
type Area struct {
	ID    string
	Label string
}

// FrontAreas — области передней проекции в каноническом порядке.
// Порядок фиксирован: от него зависит раскладка колонок экспорта,
// менять его нельзя без пересогласования схем BI.
var FrontAreas = []Area{
	{"path-1", "Neck (Front)"},
	{"path-2", "Left Sternocleidomastoideus"},
	{"path-3", "Right Sternocleidomastoideus"},
	{"path-4", "Left Trapezius (Upper)"},
	{"path-5", "Right Trapezius (Upper)"},
	{"path-6", "Left Shoulder (Front)"},
	{"path-7", "Right Shoulder (Front)"},
	{"path-8", "Left Pectoralis Major"},
	{"path-9", "Right Pectoralis Major"},
	{"path-10", "Sternum"},
	{"path-11", "Left Biceps Brachii"},
	{"path-12", "Right Biceps Brachii"},
	{"path-13", "Left Forearm (Front)"},
	{"path-14", "Right Forearm (Front)"},
	{"path-15", "Left Wrist"},
	{"path-16", "Right Wrist"},
	{"path-17", "Left Hand"},
	{"path-18", "Right Hand"},
	{"path-19", "Left Obliques"},
	{"path-20", "Right Obliques"},
	{"path-21", "Rectus Abdominis (Upper)"},
	{"path-22", "Left Deltoideus"},
	{"path-23", "Right Deltoideus"},
	{"path-24", "Rectus Abdominis (Lower)"},
	{"path-25", "Left Hip Flexor"},
	{"path-26", "Right Hip Flexor"},
	{"path-27", "Left Adductor (Groin)"},
	{"path-28", "Right Adductor (Groin)"},
	{"path-29", "Left Rectus Femoris"},
	{"path-30", "Right Rectus Femoris"},
	{"path-31", "Left Vastus Lateralis"},
	{"path-32", "Right Vastus Lateralis"},
	{"path-33", "Left Vastus Medialis"},
	{"path-34", "Right Vastus Medialis"},
	{"path-35", "Left Knee"},
	{"path-36", "Right Knee"},
	{"path-37", "Left Patellar Tendon"},
	{"path-38", "Right Patellar Tendon"},
	{"path-39", "Left Tibialis Anterior"},
	{"path-40", "Right Tibialis Anterior"},
	{"path-41", "Left Shin"},
	{"path-42", "Right Shin"},
	{"path-43", "Left Ankle (Front)"},
	{"path-44", "Right Ankle (Front)"},
	{"path-45", "Left Foot (Top)"},
	{"path-46", "Right Foot (Top)"},
	{"path-47", "Left Toes"},
	{"path-48", "Right Toes"},
	{"path-49", "Left Elbow (Front)"},
	{"path-50", "Right Elbow (Front)"},
	{"path-51", "Left Serratus Anterior"},
	{"path-52", "Right Serratus Anterior"},
	{"path-53", "Left Intercostals"},
	{"path-54", "Right Intercostals"},
	{"path-55", "Left Clavicle"},
	{"path-56", "Right Clavicle"},
	{"path-57", "Left Jaw"},
	{"path-58", "Right Jaw"},
	{"path-59", "Left Palm"},
	{"path-60", "Right Palm"},
	{"path-61", "Left Adductor Longus"},
	{"path-62", "Right Adductor Longus"},
	{"path-63", "Left Sartorius"},
	{"path-64", "Right Sartorius"},
	{"path-65", "Left IT Band (Front)"},
	{"path-66", "Right IT Band (Front)"},
	{"path-67", "Left Peroneus"},
	{"path-68", "Right Peroneus"},
	{"path-69", "Left Soleus (Front)"},
	{"path-70", "Right Soleus (Front)"},
	{"path-71", "Diaphragm"},
	{"path-72", "Pelvis"},
}

// BackAreas — области задней проекции в каноническом порядке
var BackAreas = []Area{
	{"path-73", "Neck (Back)"},
	{"path-74", "Left Trapezius (Back)"},
	{"path-75", "Right Trapezius (Back)"},
	{"path-76", "Left Levator Scapulae"},
	{"path-77", "Right Levator Scapulae"},
	{"path-78", "Left Rhomboideus"},
	{"path-79", "Right Rhomboideus"},
	{"path-80", "Left Posterior Deltoideus"},
	{"path-81", "Right Posterior Deltoideus"},
	{"path-82", "Left Infraspinatus"},
	{"path-83", "Right Infraspinatus"},
	{"path-84", "Left Teres Major"},
	{"path-85", "Right Teres Major"},
	{"path-86", "Left Latissimus Dorsi"},
	{"path-87", "Right Latissimus Dorsi"},
	{"path-88", "Thoracic Spine"},
	{"path-89", "Left Erector Spinae"},
	{"path-90", "Right Erector Spinae"},
	{"path-91", "Lumbar Spine"},
	{"path-92", "Left Lower Back"},
	{"path-93", "Right Lower Back"},
	{"path-94", "Left Triceps Brachii"},
	{"path-95", "Right Triceps Brachii"},
	{"path-96", "Left Elbow (Back)"},
	{"path-97", "Right Elbow (Back)"},
	{"path-98", "Left Forearm (Back)"},
	{"path-99", "Right Forearm (Back)"},
	{"path-100", "Left Gluteus Medius"},
	{"path-101", "Right Gluteus Medius"},
	{"path-102", "Left Gluteus Maximus"},
	{"path-103", "Right Gluteus Maximus"},
	{"path-104", "Sacrum"},
	{"path-105", "Left Piriformis"},
	{"path-106", "Right Piriformis"},
	{"path-107", "Left Biceps Femoris"},
	{"path-108", "Right Biceps Femoris"},
	{"path-109", "Left Semitendinosus"},
	{"path-110", "Right Semitendinosus"},
	{"path-111", "Left Semimembranosus"},
	{"path-112", "Right Semimembranosus"},
	{"path-113", "Left Knee (Back)"},
	{"path-114", "Right Knee (Back)"},
	{"path-115", "Left Popliteus"},
	{"path-116", "Right Popliteus"},
	{"path-117", "Left Gastrocnemius (Medial)"},
	{"path-118", "Right Gastrocnemius (Medial)"},
	{"path-119", "Left Gastrocnemius (Lateral)"},
	{"path-120", "Right Gastrocnemius (Lateral)"},
	{"path-121", "Left Soleus"},
	{"path-122", "Right Soleus"},
	{"path-123", "Left Achilles Tendon"},
	{"path-124", "Right Achilles Tendon"},
	{"path-125", "Left Ankle (Back)"},
	{"path-126", "Right Ankle (Back)"},
	{"path-127", "Left IT Band"},
	{"path-128", "Right IT Band"},
	{"path-129", "Left Adductor Magnus"},
	{"path-130", "Right Adductor Magnus"},
	{"path-131", "Left Quadratus Lumborum"},
	{"path-132", "Right Quadratus Lumborum"},
	{"path-133", "Left Teres Minor"},
	{"path-134", "Right Teres Minor"},
	{"path-135", "Left Supraspinatus"},
	{"path-136", "Right Supraspinatus"},
	{"path-137", "Left Scapula"},
	{"path-138", "Right Scapula"},
	{"path-139", "Cervical Spine"},
	{"path-140", "Left Hip (Back)"},
	{"path-141", "Right Hip (Back)"},
	{"path-142", "Left Hamstring Origin"},
	{"path-143", "Right Hamstring Origin"},
	{"path-144", "Coccyx"},
	{"path-145", "Left Calf (Inner)"},
	{"path-146", "Right Calf (Inner)"},
	{"left-heel", "Left Heel"},
	{"right-heel", "Right Heel"},
	{"left-sole", "Left Sole"},
	{"right-sole", "Right Sole"},
}

// labelIndex — индекс id -> подпись по обеим проекциям
var labelIndex map[string]string

func init() {
	labelIndex = make(map[string]string, len(FrontAreas)+len(BackAreas))
	for _, a := range FrontAreas {
		labelIndex[a.ID] = a.Label
	}
	for _, a := range BackAreas {
		labelIndex[a.ID] = a.Label
	}
}

// All возвращает все области атласа в одной канонической последовательности:
// сначала передняя проекция, затем задняя
func All() []Area {
	all := make([]Area, 0, len(FrontAreas)+len(BackAreas))
	all = append(all, FrontAreas...)
	all = append(all, BackAreas...)
	return all
}

// Known проверяет, есть ли область в атласе
func Known(id string) bool {
	_, ok := labelIndex[id]
	return ok
}

// LabelFor возвращает подпись области.
// Для неизвестного id подпись строится из самого id ("left-heel" -> "Left Heel"),
// чтобы данные не терялись при расхождении версий схемы.
func LabelFor(id string) string {
	if label, ok := labelIndex[id]; ok {
		return label
	}
	parts := strings.Split(strings.TrimSpace(id), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
